package config

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewVocabularyForTest creates a Vocabulary config for testing purposes
func NewVocabularyForTest(path string) *Vocabulary {
	return &Vocabulary{path: path}
}
