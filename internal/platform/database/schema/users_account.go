package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table           string
	ID              string
	Name            string
	Username        string
	Email           string
	Password        string
	Admin           string
	ConfirmedAt     string
	SignInCount     string
	CurrentSignInAt string
	LastSignInAt    string
	CurrentSignInIP string
	LastSignInIP    string
	CreatedAt       string
	UpdatedAt       string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:           "users.account",
	ID:              "id",
	Name:            "name",
	Username:        "username",
	Email:           "email",
	Password:        "passwordhash",
	Admin:           "admin",
	ConfirmedAt:     "confirmedat",
	SignInCount:     "signincount",
	CurrentSignInAt: "currentsigninat",
	LastSignInAt:    "lastsigninat",
	CurrentSignInIP: "currentsigninip",
	LastSignInIP:    "lastsigninip",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// EmailLowerKey is the unique index enforcing case-insensitive email uniqueness.
const EmailLowerKey = "account_email_lower_key"

// SingleAdminKey is the partial unique index allowing one admin row.
const SingleAdminKey = "account_single_admin_key"

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Username, t.Email, t.Password, t.Admin, t.ConfirmedAt,
		t.SignInCount, t.CurrentSignInAt, t.LastSignInAt, t.CurrentSignInIP,
		t.LastSignInIP, t.CreatedAt, t.UpdatedAt,
	}
}

// UsernameKey is the partial unique index on non-null usernames.
const UsernameKey = "account_username_key"
