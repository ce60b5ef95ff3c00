package notifier

import "errors"

var (
	// ErrNoRecipient возвращается, когда у клиента нет email
	ErrNoRecipient = errors.New("notifier: recipient email is empty")

	// ErrUnknownDriver возвращается при неизвестном драйвере в конфигурации
	ErrUnknownDriver = errors.New("notifier: unknown driver")

	// ErrInternal возвращается при внутренних ошибках драйвера
	ErrInternal = errors.New("notifier: internal error")

	// ErrDeliveryFailed возвращается, когда брокер или почтовый шлюз не принял сообщение
	ErrDeliveryFailed = errors.New("notifier: delivery failed")
)
