package users

type MeResponse struct {
	User      UserDTO      `json:"user"`
	Authoring AuthoringDTO `json:"authoring"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

/* ---------- AUTHORING ---------- */

// AuthoringDTO summarizes the posts written by the user. Translations are
// counted per locale code.
type AuthoringDTO struct {
	Posts        int64            `json:"posts"`
	Published    int64            `json:"published"`
	Translations map[string]int64 `json:"translations"`
}
