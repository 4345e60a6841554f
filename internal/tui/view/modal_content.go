package view

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/stationboard/internal/booking"
)

// DetailTitle is the booking modal title.
const DetailTitle = "Booking Details"

// BookingDetailModel contains the fields needed to render the booking body.
type BookingDetailModel struct {
	Name    string
	Station string
	Start   string
	End     string
	Pickup  string
	Return  string
	Line    string
}

// NewBookingDetailModel builds the detail model for b at station.
func NewBookingDetailModel(b booking.Booking, station string) BookingDetailModel {
	return BookingDetailModel{
		Name:    b.DisplayName(),
		Station: station,
		Start:   FormatDateTime(b.Start(), b.StartDate),
		End:     FormatDateTime(b.End(), b.EndDate),
		Pickup:  b.PickupStation,
		Return:  b.ReturnStation,
		Line:    BookingLine(b, time.Time{}, 32),
	}
}

// BookingDetailStyles groups styles for the booking detail body.
type BookingDetailStyles struct {
	BodyStyle  lipgloss.Style
	LabelStyle lipgloss.Style
	NameStyle  lipgloss.Style
	MutedStyle lipgloss.Style
}

// RenderBookingDetailBody renders the modal body for a booking.
func RenderBookingDetailBody(m BookingDetailModel, styles BookingDetailStyles) string {
	var body strings.Builder

	row := func(label, value string) {
		body.WriteString(styles.LabelStyle.Render(padLabel(label)))
		body.WriteString(styles.BodyStyle.Render(value))
		body.WriteString("\n")
	}

	body.WriteString(" " + styles.NameStyle.Render(m.Name) + "\n\n")
	if m.Station != "" {
		row("Station", m.Station)
	}
	row("Start", m.Start)
	row("End", m.End)
	if m.Pickup != "" {
		row("Pickup", m.Pickup)
	}
	if m.Return != "" {
		row("Return", m.Return)
	}
	body.WriteString("\n " + styles.MutedStyle.Render(m.Line))

	return body.String()
}

// BookingDetailText is the plain-text form copied to the clipboard.
func BookingDetailText(m BookingDetailModel) string {
	lines := []string{m.Name}
	if m.Station != "" {
		lines = append(lines, "Station: "+m.Station)
	}
	lines = append(lines, "Start: "+m.Start, "End: "+m.End)
	if m.Pickup != "" {
		lines = append(lines, "Pickup: "+m.Pickup)
	}
	if m.Return != "" {
		lines = append(lines, "Return: "+m.Return)
	}
	return strings.Join(lines, "\n")
}

// BookingDetailFooter renders the footer of the booking modal.
func BookingDetailFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, BackButton, CopyButton)
}

func padLabel(label string) string {
	return " " + fitCell(label+":", 9)
}
