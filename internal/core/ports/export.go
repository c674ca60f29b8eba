package ports

import "context"

// TeamExport is a rendered plain-text roster sheet.
type TeamExport struct {
	Filename string
	Body     string
}

// TeamExporter renders an owner's roster with each player's headline stats.
type TeamExporter interface {
	ExportTeam(ctx context.Context, owner string) (*TeamExport, error)
}
