package importer

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/investkaro/backend/internal/domain/crm"
	"github.com/investkaro/backend/internal/domain/identity"
	"github.com/investkaro/backend/internal/domain/shared"
	csvimport "github.com/investkaro/backend/internal/infrastructure/importer"
)

// RowError names one CSV row that could not be imported
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResult summarizes a client import run
type ImportResult struct {
	TotalRows int        `json:"total_rows"`
	Saved     int        `json:"saved"`
	Skipped   int        `json:"skipped"`
	Errors    []RowError `json:"errors,omitempty"`
}

// ClientImportService bulk-loads clients into the master pool from CSV
type ClientImportService struct {
	clients crm.ClientRepository
	logger  *zap.Logger
}

// NewClientImportService creates a new ClientImportService
func NewClientImportService(clients crm.ClientRepository, logger *zap.Logger) *ClientImportService {
	return &ClientImportService{clients: clients, logger: logger}
}

// Import parses the CSV and saves each usable row. Rows without both a
// name and a mobile are skipped; mobiles already in the pool (or seen
// earlier in the same file) are skipped as duplicates. Each problem is
// reported per row; one bad row never aborts the run.
func (s *ClientImportService) Import(ctx context.Context, viewer identity.Viewer, r io.Reader) (*ImportResult, error) {
	if !viewer.Role.CanViewTeam() {
		return nil, shared.ErrForbidden
	}

	parser, err := csvimport.NewCSVParser(r)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}
	if !parser.HasColumn(csvimport.ColName) || !parser.HasColumn(csvimport.ColMobile) {
		return nil, shared.NewDomainError("INVALID_INPUT", "CSV must contain name and mobile columns")
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}

	result := &ImportResult{TotalRows: len(rows)}
	seenMobiles := make(map[string]bool)

	for _, row := range rows {
		client, err := crm.NewClient(
			row.Get(csvimport.ColName),
			row.Get(csvimport.ColMobile),
			row.Get(csvimport.ColEmail),
			row.Get(csvimport.ColCity),
		)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Row: row.LineNumber, Reason: err.Error()})
			continue
		}

		if seenMobiles[client.Mobile] {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Row: row.LineNumber, Reason: "duplicate mobile in file"})
			continue
		}
		seenMobiles[client.Mobile] = true

		if existing, err := s.clients.FindByMobile(ctx, client.Mobile); err == nil && existing != nil {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Row: row.LineNumber, Reason: "mobile already exists"})
			continue
		}

		if err := s.clients.Save(ctx, client); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Row: row.LineNumber, Reason: err.Error()})
			continue
		}
		result.Saved++
	}

	s.logger.Info("Client import finished",
		zap.Int("total", result.TotalRows),
		zap.Int("saved", result.Saved),
		zap.Int("skipped", result.Skipped),
		zap.String("by", viewer.ID.String()))

	return result, nil
}
