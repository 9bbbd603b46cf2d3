package api

import "time"

// Project описывает проект стилей на сервере (папка с mml, mcp и mss файлами)
type Project struct {
	LastChange   time.Time `json:"last_change"`   // время последнего изменения mml/mss
	Base         string    `json:"base"`          // папка проекта относительно styles dir
	MML          string    `json:"mml"`           // имя файла документа стилей
	MCP          string    `json:"mcp"`           // имя файла пользовательского состояния
	AvailableMSS []string  `json:"available_mss"` // все mss файлы в папке проекта
}

// URL returns the route key of the project: "<base>/<mml>", or just the mml
// file name for projects located directly in the styles directory.
func (p Project) URL() string {
	if p.Base == "" || p.Base == "." {
		return p.MML
	}
	return p.Base + "/" + p.MML
}

// ProjectsResponse представляет ответ GET /api/v1/projects
type ProjectsResponse struct {
	Projects []Project `json:"projects"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
