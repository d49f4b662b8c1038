package domain

// TierStats — статистика одного уровня кэша.
// Подсчёт не имеет побочных эффектов: протухшие записи не удаляются.
type TierStats struct {
	Total   int `json:"total_entries"`
	Active  int `json:"active_entries"`
	Expired int `json:"expired_entries"`
}

// CacheStats — статистика обоих уровней.
type CacheStats struct {
	Memory TierStats `json:"memory"`
	File   TierStats `json:"file"`
}
