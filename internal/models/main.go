// Package models defines the core data structures for users, categories,
// and transactions.
package models

import "time"

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Name is the display name chosen at registration.
	Name string `json:"name"`
	// Email is the unique login email.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password. Never serialized.
	PasswordHash []byte `json:"-"`
	// CreatedAt is the registration timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// CategoryType defines the set of valid category kinds.
type CategoryType string

const (
	// Income marks a category whose transactions add to the balance.
	Income CategoryType = "income"
	// Expense marks a category whose transactions subtract from the balance.
	Expense CategoryType = "expense"
)

// Valid reports whether t is one of the known category types.
func (t CategoryType) Valid() bool {
	return t == Income || t == Expense
}

// Category groups transactions under a user-defined name and type.
// Every category belongs to exactly one user.
type Category struct {
	// ID is the unique identifier for the category.
	ID string `json:"id"`
	// UserID is the identifier of the owning user.
	UserID string `json:"user_id"`
	// Name is the user-chosen label. Not unique.
	Name string `json:"name"`
	// Type is either "income" or "expense".
	Type CategoryType `json:"type"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// Transaction records a single amount against a category.
// Every transaction belongs to exactly one user and references a category
// owned by that same user.
type Transaction struct {
	// ID is the unique identifier for the transaction.
	ID string `json:"id"`
	// UserID is the identifier of the owning user.
	UserID string `json:"user_id"`
	// CategoryID references a category of the same owner.
	CategoryID string `json:"category_id"`
	// Amount is the transaction value. Its income/expense meaning comes
	// from the category type, not the sign.
	Amount float64 `json:"amount"`
	// Description holds optional user-provided notes.
	Description string `json:"description,omitempty"`
	// Date is when the transaction occurred.
	Date time.Time `json:"date"`
	// CreatedAt is the record creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TransactionFilter narrows transaction listings and summaries.
// Nil/empty fields match everything.
type TransactionFilter struct {
	// From includes transactions dated at or after this instant.
	From *time.Time
	// To includes transactions dated at or before this instant.
	To *time.Time
	// CategoryID restricts to a single category.
	CategoryID string
}

// Summary holds aggregate totals over a user's transactions.
type Summary struct {
	// Income is the sum of amounts in income categories.
	Income float64 `json:"income"`
	// Expense is the sum of amounts in expense categories.
	Expense float64 `json:"expense"`
	// Net is Income minus Expense.
	Net float64 `json:"net"`
}
