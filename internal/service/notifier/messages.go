package notifier

import (
	"fmt"
	"strings"

	"github.com/m04kA/SCM-OrderService/internal/domain"
)

// Тексты уведомлений согласованы с операционной группой площадки
// и отправляются на индонезийском.

func buildMessage(kind EventKind, order *domain.Order) string {
	switch kind {
	case EventOrderCreated:
		return newOrderMessage(order)
	case EventOrderChanged:
		return changedOrderMessage(order)
	case EventOrderCanceled:
		return canceledOrderMessage(order)
	default:
		return ""
	}
}

func newOrderMessage(o *domain.Order) string {
	var b strings.Builder
	b.WriteString("🆕 PERMINTAAN BARU\n")
	fmt.Fprintf(&b, "ID: %s\n", o.Reference)
	fmt.Fprintf(&b, "Pemesan: %s\n\n", o.OrdererName)
	fmt.Fprintf(&b, "Unit: %s\n", o.Unit)
	fmt.Fprintf(&b, "Tanggal: %s\n", formatDate(o))
	fmt.Fprintf(&b, "Waktu: %s\n\n", formatWindow(o))
	b.WriteString("Detail Pekerjaan:\n")
	b.WriteString(o.Details)
	b.WriteString("\n\nMohon dibantu untuk permintaan ini, terima kasih.")
	return b.String()
}

func changedOrderMessage(o *domain.Order) string {
	var b strings.Builder
	b.WriteString("✏️ PERUBAHAN PESANAN\n")
	fmt.Fprintf(&b, "ID: %s\n", o.Reference)
	fmt.Fprintf(&b, "Pemesan: %s\n\n", o.OrdererName)
	fmt.Fprintf(&b, "Unit: %s\n", o.Unit)
	fmt.Fprintf(&b, "Tanggal: %s\n", formatDate(o))
	fmt.Fprintf(&b, "Waktu: %s\n\n", formatWindow(o))
	b.WriteString("Detail Pekerjaan:\n")
	b.WriteString(o.Details)
	b.WriteString("\n\nMohon diperhatikan perubahan jadwal ini, terima kasih.")
	return b.String()
}

func canceledOrderMessage(o *domain.Order) string {
	var b strings.Builder
	b.WriteString("❌ PEMBATALAN PESANAN\n")
	fmt.Fprintf(&b, "ID: %s\n", o.Reference)
	fmt.Fprintf(&b, "Pemesan: %s\n\n", o.OrdererName)
	fmt.Fprintf(&b, "Unit: %s\n", o.Unit)
	fmt.Fprintf(&b, "Tanggal: %s\n\n", formatDate(o))
	b.WriteString("Pesanan ini telah dibatalkan, terima kasih.")
	return b.String()
}

func formatDate(o *domain.Order) string {
	if o.Date == nil {
		return "-"
	}
	return o.Date.Format(domain.MessageDateFormat)
}

func formatWindow(o *domain.Order) string {
	if o.StartTime == nil || o.EndTime == nil {
		return "-"
	}
	return fmt.Sprintf("%s - %s", o.StartTime.String(), o.EndTime.String())
}
