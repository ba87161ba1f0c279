package dto

type ExportOutput struct {
	SessionID string
	Path      string
	Payload   string
}
