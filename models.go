package parks

import (
	"strconv"
	"time"

	"github.com/uptrace/bun"
)

// User is the user model. Password is transient: it carries the cleartext
// on authenticate/register payloads and is blanked on every response.
// Token is populated only on the record returned from authentication.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Role          UserRole   `bun:"user_role,notnull" json:"role,omitempty"`
	Password      string     `bun:"-" json:"password,omitempty"`
	Token         string     `bun:"-" json:"token,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Sanitize blanks credential material for responses
func (u *User) Sanitize() *User {
	u.Password = ""
	u.PasswordHash = ""
	return u
}

// Identity adapts the record to the Identity interface
func (u *User) Identity() Identity {
	return userIdentity{user: u}
}

type userIdentity struct {
	user *User
}

func (i userIdentity) ID() string       { return strconv.FormatInt(i.user.ID, 10) }
func (i userIdentity) Username() string { return i.user.Username }
func (i userIdentity) Role() string     { return i.user.Role }

// NationalPark is a park record. Picture travels base64-encoded on the wire.
type NationalPark struct {
	bun.BaseModel `bun:"table:national_parks,alias:np"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Name          string    `bun:"name,notnull" json:"name"`
	State         string    `bun:"state,notnull" json:"state"`
	Picture       []byte    `bun:"picture,nullzero" json:"picture,omitempty"`
	Established   time.Time `bun:"established,nullzero" json:"established,omitempty"`
	Created       time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created,omitempty"`
}

// Difficulty grades a trail
type Difficulty = string

const (
	DifficultyEasy      Difficulty = "Easy"
	DifficultyModerate  Difficulty = "Moderate"
	DifficultyDifficult Difficulty = "Difficult"
	DifficultyExpert    Difficulty = "Expert"
)

// IsValidDifficulty checks a difficulty grade against the known set
func IsValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyDifficult, DifficultyExpert:
		return true
	default:
		return false
	}
}

// Trail is a trail record referencing its parent park. Read DTOs carry the
// nested park populated from the relation.
type Trail struct {
	bun.BaseModel  `bun:"table:trails,alias:trl"`
	ID             int64         `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Name           string        `bun:"name,notnull" json:"name"`
	Distance       float64       `bun:"distance,notnull" json:"distance"`
	Elevation      float64       `bun:"elevation,notnull" json:"elevation"`
	Difficulty     Difficulty    `bun:"difficulty,notnull" json:"difficulty"`
	NationalParkID int64         `bun:"national_park_id,notnull" json:"national_park_id"`
	NationalPark   *NationalPark `bun:"rel:belongs-to,join:national_park_id=id" json:"national_park,omitempty"`
	DateCreated    time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"date_created,omitempty"`
}
