// Пакет model — доменные модели Movie API.
// MovieRecord — запись каталога фильмов (owned by внешний importer).
package model

// MovieRecord — запись фильма в каталоге.
// Сервис использует модель только для чтения: записи создаются при загрузке
// снапшота (или внешним importer'ом в PostgreSQL) и не изменяются.
type MovieRecord struct {
	// UID — стабильный уникальный идентификатор записи
	UID string `json:"uid"`
	// PostID — идентификатор поста во внешнем хранилище контента
	PostID int64 `json:"post_id"`
	// ChannelID — идентификатор канала во внешнем хранилище контента
	ChannelID int64 `json:"channel_id"`
	// Title — человекочитаемое название (опционально)
	Title *string `json:"title,omitempty"`
	// FileName — имя файла (опционально)
	FileName *string `json:"file_name,omitempty"`
	// Duration — длительность в секундах (опционально)
	Duration *float64 `json:"duration,omitempty"`
	// Size — размер файла в байтах (опционально)
	Size *int64 `json:"size,omitempty"`
	// Mime — MIME-тип файла (опционально)
	Mime *string `json:"mime,omitempty"`
	// Type — тип записи: video, document
	Type string `json:"type"`

	// Haystack — нормализованный поисковый текст (title + file_name).
	// Вычисляется один раз при загрузке каталога, не сериализуется.
	Haystack string `json:"-"`
}

// TitleOrEmpty возвращает Title или пустую строку.
func (m *MovieRecord) TitleOrEmpty() string {
	if m.Title == nil {
		return ""
	}
	return *m.Title
}

// FileNameOrEmpty возвращает FileName или пустую строку.
func (m *MovieRecord) FileNameOrEmpty() string {
	if m.FileName == nil {
		return ""
	}
	return *m.FileName
}

// DisplayTitle возвращает название для отображения:
// Title, при его отсутствии — FileName, иначе пустая строка.
func (m *MovieRecord) DisplayTitle() string {
	if m.Title != nil && *m.Title != "" {
		return *m.Title
	}
	return m.FileNameOrEmpty()
}
