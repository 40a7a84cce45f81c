package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// Префиксы номера заявки
const (
	RequestPrefix  = "REQ-"
	PendingPrefix  = "PENDING-"
	CanceledPrefix = "CANCELED-"
)

var (
	// lifecyclePrefixRe срезает все накопившиеся префиксы жизненного цикла
	lifecyclePrefixRe = regexp.MustCompile(`^(PENDING-|CANCELED-)+`)

	// referenceNumberRe извлекает числовой суффикс базового номера
	referenceNumberRe = regexp.MustCompile(`^REQ-(\d+)$`)
)

// FormatReference форматирует номер заявки по порядковому номеру: REQ-00012
func FormatReference(n int64) string {
	return fmt.Sprintf("%s%05d", RequestPrefix, n)
}

// BaseReference возвращает базовый номер заявки, срезав все префиксы
// PENDING-/CANCELED- (включая накопившиеся стопкой)
func BaseReference(ref string) string {
	return lifecyclePrefixRe.ReplaceAllString(ref, "")
}

// ReferenceNumber извлекает порядковый номер из базового номера заявки.
// Возвращает 0, если номер не соответствует формату REQ-<n>.
func ReferenceNumber(ref string) int64 {
	matches := referenceNumberRe.FindStringSubmatch(BaseReference(ref))
	if matches == nil {
		return 0
	}
	n, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// PendingReference возвращает номер с префиксом PENDING- поверх базового номера
func PendingReference(ref string) string {
	return PendingPrefix + BaseReference(ref)
}

// CanceledReference возвращает номер с префиксом CANCELED- поверх базового
// номера. Любые уже существующие префиксы срезаются, поэтому двойных
// CANCELED-PENDING- не возникает.
func CanceledReference(ref string) string {
	return CanceledPrefix + BaseReference(ref)
}
