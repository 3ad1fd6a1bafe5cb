package usecase

// FormatScalar is exported for testing
var FormatScalar = formatScalar

// EntityLoc is exported for testing
var EntityLoc = entityLoc
