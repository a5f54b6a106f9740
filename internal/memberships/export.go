package memberships

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/apiarycd/memberships/internal/jobs"
	"github.com/apiarycd/memberships/internal/queue"
	"go.uber.org/zap"
)

var ErrUnsupportedExportVersion = errors.New("unsupported export version")

const dateLayout = time.DateOnly

var exportHeader = []string{
	"membershipId", "membershipUuid", "name", "user", "recurringPrice", "paymentMethod",
	"billingInterval", "billingPeriods", "validFrom", "validUntil", "state",
	"periodUuid", "periodStart", "periodEnd", "periodState",
}

// ExportProcessor handles queued export jobs.
type ExportProcessor struct {
	memberships *Service
	jobs        JobTracker

	logger *zap.Logger
}

func NewExportProcessor(memberships *Service, jobs JobTracker, logger *zap.Logger) *ExportProcessor {
	return &ExportProcessor{
		memberships: memberships,
		jobs:        jobs,

		logger: logger,
	}
}

// Handle implements queue.Handler. Messages without a payload are
// acknowledged and ignored.
func (p *ExportProcessor) Handle(ctx context.Context, msg queue.Message) error {
	if len(msg.Payload) == 0 || string(msg.Payload) == "null" {
		p.logger.Warn("invalid job data", zap.String("id", msg.ID))
		return nil
	}

	var data ExportData
	if err := msg.Decode(&data); err != nil {
		return fmt.Errorf("failed to decode export job: %w", err)
	}

	if data.Ver != ExportDataVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedExportVersion, data.Ver)
	}

	if err := p.process(ctx, data); err != nil {
		p.logger.Error("failed to export memberships", zap.Any("data", data), zap.Error(err))

		if updateErr := p.jobs.SetState(ctx, data.DBJobID, jobs.StateFailed); updateErr != nil {
			p.logger.Error("failed to mark job as failed", zap.Int64("job", data.DBJobID), zap.Error(updateErr))
		}

		return err
	}

	return nil
}

func (p *ExportProcessor) process(ctx context.Context, data ExportData) error {
	if err := p.jobs.SetState(ctx, data.DBJobID, jobs.StateInProgress); err != nil {
		return fmt.Errorf("failed to mark job in progress: %w", err)
	}

	all, err := p.memberships.FindAll(ctx)
	if err != nil {
		return err
	}

	report, err := RenderCSV(all)
	if err != nil {
		return err
	}

	p.logger.Info("memberships exported",
		zap.Int64("job", data.DBJobID),
		zap.String("email", data.Email),
		zap.Int("memberships", len(all)),
	)

	succeeded := jobs.StateSucceeded
	if _, updateErr := p.jobs.Update(ctx, data.DBJobID, jobs.StatusUpdate{JobID: nil, State: &succeeded, Result: &report}); updateErr != nil {
		return fmt.Errorf("failed to mark job succeeded: %w", updateErr)
	}

	return nil
}

// RenderCSV writes one row per period. Memberships without periods get a
// single row with empty period columns.
func RenderCSV(items []MembershipWithPeriods) (string, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write(exportHeader); err != nil {
		return "", fmt.Errorf("failed to write csv: %w", err)
	}

	for _, item := range items {
		m := item.Membership
		base := []string{
			strconv.FormatInt(m.ID, 10),
			m.UUID,
			m.Name,
			strconv.FormatInt(m.UserID, 10),
			strconv.FormatFloat(m.RecurringPrice, 'f', -1, 64),
			string(m.PaymentMethod),
			string(m.BillingInterval),
			strconv.Itoa(m.BillingPeriods),
			m.ValidFrom.Format(dateLayout),
			m.ValidUntil.Format(dateLayout),
			string(m.State),
		}

		if len(item.Periods) == 0 {
			if err := w.Write(append(base, "", "", "", "")); err != nil {
				return "", fmt.Errorf("failed to write csv: %w", err)
			}
			continue
		}

		for _, period := range item.Periods {
			row := append(append([]string{}, base...),
				period.UUID,
				period.Start.Format(time.RFC3339),
				period.End.Format(time.RFC3339),
				string(period.State),
			)
			if err := w.Write(row); err != nil {
				return "", fmt.Errorf("failed to write csv: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write csv: %w", err)
	}

	return buf.String(), nil
}
