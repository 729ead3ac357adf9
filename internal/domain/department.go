package domain

type Department struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc"`
}
