package drafts

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Shop подпись салона в письмах
type Shop struct {
	Name string
}

// Draft черновик письма, который администратор редактирует перед отправкой
type Draft struct {
	Kind    domain.NotificationKind
	To      string
	Subject string
	Body    string
}

// Compose собирает текст письма по виду уведомления.
// Для confirmation после переноса передается уже обновленное бронирование.
func Compose(kind domain.NotificationKind, b *domain.Booking, alternatives domain.Alternatives, shop Shop) Draft {
	d := Draft{Kind: kind, To: b.CustomerEmail}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s 様\n\n", b.CustomerName)

	switch kind {
	case domain.NotificationConfirmation:
		d.Subject = fmt.Sprintf("【%s】ご予約が確定しました", shop.Name)
		sb.WriteString("この度はご予約いただきありがとうございます。以下の内容で予約が確定しました。\n\n")
		writeDetails(&sb, b)
		sb.WriteString("\nご来店をお待ちしております。\n")

	case domain.NotificationCancellation:
		d.Subject = fmt.Sprintf("【%s】ご予約がキャンセルされました", shop.Name)
		sb.WriteString("以下のご予約がキャンセルされました。\n\n")
		writeDetails(&sb, b)
		sb.WriteString("\n別の日時でのご予約をお待ちしております。\n")

	case domain.NotificationResuggestion:
		d.Subject = fmt.Sprintf("【%s】ご予約についてのご連絡", shop.Name)
		sb.WriteString("誠に申し訳ございませんが、ご希望の日時でのご予約をお受けすることができませんでした。\n\n")
		writeDetails(&sb, b)
		sb.WriteString("\n以下の日時でしたらご案内が可能です。\n")
		for i, alt := range alternatives {
			fmt.Fprintf(&sb, "案%d: %s %s\n", i+1, alt.Date.Format(domain.DateFormat), alt.StartTime)
		}
		sb.WriteString("\nご都合のよい日時をご返信ください。\n")

	case domain.NotificationBookingReceived:
		d.Subject = fmt.Sprintf("【%s】ご予約リクエストを受け付けました", shop.Name)
		sb.WriteString("ご予約リクエストを受け付けました。内容を確認のうえ、確定のご連絡をお送りします。\n\n")
		writeDetails(&sb, b)
	}

	fmt.Fprintf(&sb, "\n%s\n※このメールは自動送信されています。\n", shop.Name)
	d.Body = sb.String()
	return d
}

func writeDetails(sb *strings.Builder, b *domain.Booking) {
	fmt.Fprintf(sb, "日付: %s\n", b.BookingDate.Format(domain.DateFormat))
	fmt.Fprintf(sb, "時間: %s - %s\n", b.StartTime, b.EndTime)
	fmt.Fprintf(sb, "メニュー: %s\n", b.MenuName)
}
