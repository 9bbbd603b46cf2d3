package project

import (
	"net/url"
	"strconv"
	"strings"
)

// MapParams is the query of a rendered map request.
type MapParams struct {
	MML  string
	Base string
	MSS  []string
	T    int64 // метка времени в миллисекундах для сброса кэша
}

// Query encodes the parameters as mml, mss, base and t.
func (p MapParams) Query() url.Values {
	q := url.Values{}
	q.Set("mml", p.MML)
	q.Set("mss", strings.Join(p.MSS, ","))
	q.Set("base", p.Base)
	q.Set("t", strconv.FormatInt(p.T, 10))
	return q
}
