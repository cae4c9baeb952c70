package entities

// Roster is the class list used to authorize queue requests.
type Roster struct {
	Students []Student `json:"students"`
	Helpers  []Helper  `json:"helpers"`
}

type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group uint16 `json:"group"`
}

type Helper struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
