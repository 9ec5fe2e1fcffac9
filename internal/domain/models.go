// Package domain defines the persistence models for friends, games, and
// loans. These types are mapped with GORM and form the core data layer of
// the loan tracker.
//
// Referential integrity is enforced by the database: every foreign key is
// declared ON DELETE RESTRICT, so a friend that owns or borrowed games, or a
// game that was lent, cannot be removed while those rows exist.
package domain

import (
	"encoding/json"
	"time"
)

// DateLayout is the textual format of loan dates (HTML date inputs use it).
const DateLayout = "2006-01-02"

// Amigo is a person who can own games and borrow games.
//
// Fields:
//   - ID: auto-increment primary key, never reused.
//   - Nome / Email: required display data.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Amigo struct {
	ID        uint      `json:"id"        gorm:"primaryKey;autoIncrement"`
	Nome      string    `json:"nome"      gorm:"type:varchar(255);not null;index"`
	Email     string    `json:"email"     gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the database table name for Amigo.
func (Amigo) TableName() string { return "amigos" }

// Jogo is a game owned by exactly one Amigo.
type Jogo struct {
	ID         uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	Titulo     string    `json:"titulo"     gorm:"type:varchar(255);not null;index"`
	Plataforma string    `json:"plataforma" gorm:"type:varchar(120);not null"`
	AmigoID    uint      `json:"amigoId"    gorm:"not null;index"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Dono is the owning friend; populated only when preloaded.
	Dono *Amigo `json:"dono,omitempty" gorm:"foreignKey:AmigoID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Jogo.
func (Jogo) TableName() string { return "jogos" }

// Emprestimo records a friend borrowing a game from DataInicio until DataFim.
// A nil DataFim means the loan is still in progress.
type Emprestimo struct {
	ID         uint      `json:"id"                gorm:"primaryKey;autoIncrement"`
	JogoID     uint      `json:"jogoId"            gorm:"not null;index"`
	AmigoID    uint      `json:"amigoId"           gorm:"not null;index"`
	DataInicio string    `json:"dataInicio"        gorm:"type:varchar(10);not null"`
	DataFim    *string   `json:"dataFim,omitempty" gorm:"type:varchar(10)"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Jogo and Amigo are the lent game and the borrower; populated only when preloaded.
	Jogo  *Jogo  `json:"jogo,omitempty"  gorm:"foreignKey:JogoID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Amigo *Amigo `json:"amigo,omitempty" gorm:"foreignKey:AmigoID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Emprestimo.
func (Emprestimo) TableName() string { return "emprestimos" }

// InProgress reports whether the loan has no end date yet.
func (e Emprestimo) InProgress() bool { return e.DataFim == nil || *e.DataFim == "" }

// MarshalJSON adds the derived "emAndamento" flag to the stored fields.
func (e Emprestimo) MarshalJSON() ([]byte, error) {
	type plain Emprestimo
	return json.Marshal(struct {
		plain
		EmAndamento bool `json:"emAndamento"`
	}{plain(e), e.InProgress()})
}

// SortField names a column a listing may be ordered by.
type SortField string

const (
	SortByID     SortField = "id"
	SortByNome   SortField = "nome"
	SortByTitulo SortField = "titulo"
)
