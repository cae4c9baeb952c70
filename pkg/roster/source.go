package roster

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"helpqueue/pkg/entities"
	"helpqueue/pkg/utils"
)

// FileSource reads a JSON roster from disk on every Load.
type FileSource struct {
	Path string
}

func (f FileSource) Load(_ context.Context) (entities.Roster, error) {
	r, err := utils.Load[entities.Roster](f.Path)
	if err != nil {
		return entities.Roster{}, fmt.Errorf("load roster %s: %w", f.Path, err)
	}
	return r, nil
}

// ValueReader is the subset of the Sheets client a SheetsSource needs.
type ValueReader interface {
	Values(ctx context.Context, spreadsheetID, rng string) ([][]string, error)
}

// SheetsSource reads students as rows of [id, name, group] and helpers as
// rows of [id, name].
type SheetsSource struct {
	Client        ValueReader
	SpreadsheetID string
	StudentsRange string
	HelpersRange  string
}

func (s SheetsSource) Load(ctx context.Context) (entities.Roster, error) {
	var r entities.Roster

	rows, err := s.Client.Values(ctx, s.SpreadsheetID, s.StudentsRange)
	if err != nil {
		return r, fmt.Errorf("read students: %w", err)
	}
	for i, row := range rows {
		if len(row) < 3 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		group, err := strconv.ParseUint(strings.TrimSpace(row[2]), 10, 16)
		if err != nil {
			return r, fmt.Errorf("students row %d: invalid group %q", i+1, row[2])
		}
		r.Students = append(r.Students, entities.Student{
			ID:    strings.TrimSpace(row[0]),
			Name:  strings.TrimSpace(row[1]),
			Group: uint16(group),
		})
	}

	if s.HelpersRange == "" {
		return r, nil
	}
	rows, err = s.Client.Values(ctx, s.SpreadsheetID, s.HelpersRange)
	if err != nil {
		return r, fmt.Errorf("read helpers: %w", err)
	}
	for _, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		h := entities.Helper{ID: strings.TrimSpace(row[0])}
		if len(row) > 1 {
			h.Name = strings.TrimSpace(row[1])
		}
		r.Helpers = append(r.Helpers, h)
	}
	return r, nil
}
