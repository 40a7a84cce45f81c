package fonnte

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("fonnte client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("fonnte client: invalid response")

	// ErrSendRejected возвращается, когда шлюз отказал в доставке
	// (status=false в теле ответа)
	ErrSendRejected = errors.New("fonnte client: send rejected")
)
