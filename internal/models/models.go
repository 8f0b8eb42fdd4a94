// Package models holds the record types served by the API.
package models

import (
	"reflect"
	"time"

	"schemata/internal/meta"
)

// Entity carries the identity/audit columns every record starts with.
type Entity struct {
	ID               int        `column:""`
	Guid             string     `column:"length=50"`
	CreatedDate      *time.Time `column:""`
	LastModifiedDate *time.Time `column:""`
}

type Site struct {
	Entity
	meta.Table `table:"siteserver_site"`

	SiteDir   string  `column:"length=50"`
	SiteName  string  `column:"length=50"`
	Root      bool    `column:""`
	ParentID  int     `column:""`
	Taxis     int     `column:""`
	Settings  string  `column:"text,extend"`
	Rating    float64 `column:""`
	CacheHint string  `db:"-"`
}

type ContentState int

const (
	StateDraft ContentState = iota
	StatePublished
	StateArchived
)

func (s ContentState) String() string {
	switch s {
	case StatePublished:
		return "Published"
	case StateArchived:
		return "Archived"
	}
	return "Draft"
}

func (ContentState) Values() []meta.Enum {
	return []meta.Enum{StateDraft, StatePublished, StateArchived}
}

type Content struct {
	Entity

	SiteID      int          `column:""`
	Title       string       `column:"length=255"`
	SubTitle    string       `column:"length=255"`
	Body        string       `column:"text,extend"`
	Summary     string       `column:"text"`
	State       ContentState `column:""`
	Hits        int          `column:""`
	PublishDate *time.Time   `column:""`
	Top         bool         `column:""`
}

func (Content) TableName() string { return "siteserver_content" }

type User struct {
	Entity
	meta.Table `table:"siteserver_user"`

	UserName    string     `column:"length=255"`
	Password    string     `column:"length=255" json:"-"`
	Salt        string     `column:"length=128" json:"-"`
	Email       string     `column:""`
	Locked      bool       `column:""`
	LastLogin   *time.Time `column:""`
	Permissions []string   `db:"-"`
}

// All lists the record types the server registers.
func All() []reflect.Type {
	return []reflect.Type{
		reflect.TypeFor[Site](),
		reflect.TypeFor[Content](),
		reflect.TypeFor[User](),
	}
}

func (s ContentState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
