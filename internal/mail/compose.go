package mail

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mkoval24/printflow/internal/domain"
)

// Темы писем типографии. Тексты на польском — язык получателей.
const (
	SubjectPrintOrder   = "Plakaty do druku"
	SubjectMissingFiles = "BRAK PLIKÓW - Plakaty"
)

// FormatLabel — подпись формата печати по соглашению об именовании файлов.
// Суффиксы смотрим в имени без расширения и без учёта регистра; файл вне
// соглашений идёт без подписи.
func FormatLabel(filename string) string {
	name := strings.ToLower(filename)
	name = strings.TrimSuffix(name, ".pdf")

	switch {
	case strings.Contains(name, "_b2"):
		return "format 50 x 70 cm"
	case strings.HasSuffix(name, "_45"):
		return "format 40x50 cm"
	case strings.Contains(name, "_a3"):
		return "format 30x40 cm"
	default:
		return ""
	}
}

// PrintOrderBody — текст письма в типографию: каждый доступный файл с
// тиражом, подписью формата и ссылкой на скачивание. Файлы идут в
// алфавитном порядке, чтобы письмо было воспроизводимым.
func PrintOrderBody(batch *domain.OrderBatch, available map[string]domain.FileInfo) string {
	var b strings.Builder
	b.WriteString("Dzień dobry,\n\nPrzesyłam pliki do druku:\n\n")

	names := make([]string, 0, len(available))
	for name := range available {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		info := available[name]
		fmt.Fprintf(&b, "%s -- %d szt. %s\n", name, batch.Quantities[name], FormatLabel(name))
		fmt.Fprintf(&b, "Link: %s\n\n", info.WebViewLink)
	}

	b.WriteString("\nPozdrawiam")
	return b.String()
}

// MissingFilesBody — текст письма администратору о ненайденных файлах.
// Для файла без известного тиража пишется "N/A".
func MissingFilesBody(orderIDs []string, missing []string, quantities map[string]int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Brakujące pliki dla zamówień: %s\n\n", strings.Join(orderIDs, ", "))

	for _, name := range missing {
		if qty, ok := quantities[name]; ok {
			fmt.Fprintf(&b, "%s -- %d szt.\n", name, qty)
		} else {
			fmt.Fprintf(&b, "%s -- N/A szt.\n", name)
		}
	}
	return b.String()
}
