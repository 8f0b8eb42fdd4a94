package meta

import (
	"database/sql"
	"strconv"
	"time"
)

type Status int

const (
	Draft Status = iota
	Published
	Archived
)

func (s Status) String() string {
	switch s {
	case Draft:
		return "Draft"
	case Published:
		return "Published"
	case Archived:
		return "Archived"
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

func (Status) Values() []Enum { return []Enum{Draft, Published, Archived} }

type Color string

func (c Color) String() string { return string(c) }

func (Color) Values() []Enum { return []Enum{Color("Red"), Color("Green")} }

type entity struct {
	Id               int        `column:""`
	Guid             string     `column:"length=50"`
	CreatedDate      *time.Time `column:""`
	LastModifiedDate *time.Time `column:""`
}

type content struct {
	Table `table:"siteserver_content"`

	Title    string  `column:"length=255"`
	Body     string  `column:"text,extend"`
	Summary  string  `column:"text"`
	Hits     int     `column:""`
	Checked  bool    `column:""`
	Price    float64 `column:""`
	Status   Status  `column:""`
	Tags     []string
	Password string `column:"" json:"-"`
	Preview  string `db:"-"`
	secret   string `column:""`

	entity
}

type site struct {
	SiteName string         `column:""`
	ParentID sql.NullInt64  `column:""`
	Domain   sql.NullString `column:"length=100"`
	Root     *bool          `column:""`
	Raw      []byte         `column:""`
	Settings map[string]string
}

func (site) TableName() string { return "siteserver_site" }

type user struct {
	LastModifiedDate time.Time `column:""`
	UserName         string    `column:""`
	ID               int64     `column:""`
	GUID             string    `column:""`
	Email            string    `column:"length=-1"`
}

func (*user) TableName() string { return "siteserver_user" }

type record struct {
	Name     string
	Count    int
	Ratio    float64
	Enabled  bool
	When     time.Time
	Maybe    *int
	Status   Status
	Color    Color
	hidden   string

	*inner
}

type inner struct {
	Note string
}

type numbers struct {
	Small int8
	Count uint
	N     int
}

type holder struct {
	Kind Enum
}
