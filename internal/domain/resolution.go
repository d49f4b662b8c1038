package domain

// FileInfo — дескриптор найденного файла в хранилище:
// стабильный идентификатор и разделяемая ссылка на просмотр.
type FileInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	WebViewLink string `json:"webViewLink"`
}

// ResolutionResult — итог сверки требуемых файлов с хранилищем.
// После создания не мутируется: в кэш и из кэша идут копии.
type ResolutionResult struct {
	Available map[string]FileInfo `json:"available_files"` // имя (lower) -> дескриптор
	Missing   []string            `json:"missing_files"`   // запрошенные, но не найденные
}

// NewResolutionResult — пустой результат с инициализированной картой.
func NewResolutionResult() *ResolutionResult {
	return &ResolutionResult{Available: make(map[string]FileInfo)}
}

// TotalFound — число доступных файлов (включая совпадения сверх запроса).
func (r *ResolutionResult) TotalFound() int { return len(r.Available) }

// Clone возвращает глубокую копию результата.
func (r *ResolutionResult) Clone() *ResolutionResult {
	if r == nil {
		return nil
	}
	cp := &ResolutionResult{
		Available: make(map[string]FileInfo, len(r.Available)),
	}
	for k, v := range r.Available {
		cp.Available[k] = v
	}
	if r.Missing != nil {
		cp.Missing = append([]string(nil), r.Missing...)
	}
	return cp
}
