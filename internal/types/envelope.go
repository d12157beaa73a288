package types

// Коды в конверте ответа
const (
	CodeOK           = 200
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeServerError  = 500
)

// Общий конверт всех ответов апи
type Envelope[T any] struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data *T     `json:"data"`
}

func (e *Envelope[T]) OK() bool {
	return e != nil && e.Code == CodeOK
}

func OK[T any](data T, msg string) *Envelope[T] {
	return &Envelope[T]{Code: CodeOK, Msg: msg, Data: &data}
}

func Fail[T any](code int, msg string) *Envelope[T] {
	return &Envelope[T]{Code: code, Msg: msg}
}

// Страница результата
type PagedResult[T any] struct {
	List     []T `json:"list"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

func (p PagedResult[T]) Valid() bool {
	return p.Page >= 1 && p.PageSize >= 1 && p.Total >= 0 && len(p.List) <= p.PageSize
}

// Paginate вырезает непрерывный кусок из полного списка, page начинается с 1
func Paginate[T any](all []T, page, pageSize int) PagedResult[T] {
	page = max(page, 1)
	pageSize = max(pageSize, 1)

	res := PagedResult[T]{
		List:     make([]T, 0, pageSize),
		Total:    len(all),
		Page:     page,
		PageSize: pageSize,
	}

	start := (page - 1) * pageSize
	if start >= len(all) {
		return res
	}
	end := min(start+pageSize, len(all))

	res.List = append(res.List, all[start:end]...)
	return res
}

// Пустые данные для ответов без полезной нагрузки
type Empty struct{}
