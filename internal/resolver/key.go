package resolver

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
)

// CacheKey строит детерминированный ключ кэша для набора имён файлов в
// рамках области поиска (бакет/префикс хранилища). Имена приводятся к
// нижнему регистру и сортируются, поэтому порядок и регистр на ключ не
// влияют. Сам набор в ключе свёрнут в sha256 — имена бывают длинными,
// а ключ попадает в имя файла дискового уровня кэша.
func CacheKey(scope string, files []string) string {
	normalized := make([]string, 0, len(files))
	for _, f := range files {
		normalized = append(normalized, strings.ToLower(f))
	}
	sort.Strings(normalized)

	sum := sha256.Sum256([]byte(strings.Join(normalized, "\n")))
	return fmt.Sprintf("files:%s:%x", scope, sum)
}
