package apperr

// Response is the wire shape of every failure. Clients branch on the
// pair without parsing free text beyond matching on Detail.
type Response struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Render maps err onto its HTTP status and {title, detail} body.
func Render(err error) (int, Response) {
	e := As(err)
	return e.Status(), Response{Title: e.Title(), Detail: e.Detail}
}
