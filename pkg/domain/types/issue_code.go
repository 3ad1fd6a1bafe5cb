package types

// IssueCode classifies an issue found while loading, parsing or analyzing a spec
type IssueCode string

const (
	CodeMissingFile        IssueCode = "MISSING_FILE"
	CodeYAMLParseError     IssueCode = "YAML_PARSE_ERROR"
	CodeInvalidRoot        IssueCode = "INVALID_ROOT"
	CodeTypeError          IssueCode = "TYPE_ERROR"
	CodeMissingField       IssueCode = "MISSING_FIELD"
	CodeMissingID          IssueCode = "MISSING_ID"
	CodeBadIDFormat        IssueCode = "BAD_ID_FORMAT"
	CodeDuplicateID        IssueCode = "DUPLICATE_ID"
	CodeBrokenLink         IssueCode = "BROKEN_LINK"
	CodeGap                IssueCode = "GAP"
	CodeMissingMeasurement IssueCode = "MISSING_MEASUREMENT"
	CodeIncompleteSLOSLA   IssueCode = "INCOMPLETE_SLO_SLA"
	CodeMissingViewLink    IssueCode = "MISSING_VIEW_LINK"
	CodeUnused             IssueCode = "UNUSED"
)

// AllIssueCodes returns every issue code the pipeline can emit
func AllIssueCodes() []IssueCode {
	return []IssueCode{
		CodeMissingFile,
		CodeYAMLParseError,
		CodeInvalidRoot,
		CodeTypeError,
		CodeMissingField,
		CodeMissingID,
		CodeBadIDFormat,
		CodeDuplicateID,
		CodeBrokenLink,
		CodeGap,
		CodeMissingMeasurement,
		CodeIncompleteSLOSLA,
		CodeMissingViewLink,
		CodeUnused,
	}
}

// IsValid checks if the issue code belongs to the taxonomy
func (c IssueCode) IsValid() bool {
	for _, code := range AllIssueCodes() {
		if c == code {
			return true
		}
	}
	return false
}

// String returns the string representation of the issue code
func (c IssueCode) String() string {
	return string(c)
}
