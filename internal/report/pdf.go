package report

import (
	"fmt"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"timetracker/internal/core/model"
)

var pdfGrid = []uint{2, 2, 6, 2}

// WritePDF renders the daily report to path.
func (daily Daily) WritePDF(path string, settings model.DisplaySettings) error {
	if len(daily.Rows) == 0 {
		return model.ErrNothingToExport
	}

	m := daily.build(settings)
	if err := m.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf report: %w", err)
	}
	return nil
}

// PDF renders the daily report in memory.
func (daily Daily) PDF(settings model.DisplaySettings) ([]byte, error) {
	if len(daily.Rows) == 0 {
		return nil, model.ErrNothingToExport
	}

	buffer, err := daily.build(settings).Output()
	if err != nil {
		return nil, fmt.Errorf("render pdf report: %w", err)
	}
	return buffer.Bytes(), nil
}

func (daily Daily) build(settings model.DisplaySettings) pdf.Maroto {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("Daily Activities for "+daily.Date, props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
	})

	headers := []string{"Time", "Category", "Activity", "Duration"}
	rows := make([][]string, 0, len(daily.Rows))
	for _, row := range daily.Rows {
		record := row.Record
		activity := record.Name
		if record.Notes != "" {
			activity = fmt.Sprintf("%s (%s)", record.Name, record.Notes)
		}
		rows = append(rows, []string{
			record.Start.String() + "-" + record.End.String(),
			settings.BracketStyle.Wrap(record.Category),
			activity,
			model.FormatDuration(record.Duration()),
		})
	}

	m.TableList(headers, rows, props.TableList{
		HeaderProp: props.TableListContent{
			Size:      10,
			GridSizes: pdfGrid,
		},
		ContentProp: props.TableListContent{
			Size:      10,
			GridSizes: pdfGrid,
		},
		Align:                consts.Left,
		AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
		HeaderContentSpace:   1,
		Line:                 false,
	})

	m.Row(10, func() {
		m.Col(12, func() {
			m.Text("Summary", props.Text{
				Top:   5,
				Style: consts.Bold,
				Size:  14,
			})
		})
	})
	for _, line := range daily.SummaryLines() {
		text := line
		m.Row(7, func() {
			m.Col(12, func() {
				m.Text(text, props.Text{
					Top:   1,
					Style: consts.Normal,
					Align: consts.Left,
					Size:  11,
				})
			})
		})
	}

	return m
}
