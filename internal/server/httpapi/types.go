package httpapi

import (
	"time"

	"github.com/dmitrijs2005/teamboard/internal/common"
	"github.com/dmitrijs2005/teamboard/internal/server/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateStatusRequest struct {
	StatusID int64 `json:"statusId"`
}

type statusPayload struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// rosterUserPayload is the full user shape used by the roster and /me.
type rosterUserPayload struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	CurrentStatus string    `json:"currentStatus"`
	StatusID      *int64    `json:"statusId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// loginUserPayload omits the timestamps, matching the login response shape.
type loginUserPayload struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	CurrentStatus string `json:"currentStatus"`
	StatusID      *int64 `json:"statusId"`
}

// updatedUserPayload is returned by the self-status mutation.
type updatedUserPayload struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	FullName      string `json:"fullName"`
	CurrentStatus string `json:"currentStatus"`
	StatusID      *int64 `json:"statusId"`
}

// adminUpdatedUserPayload is the narrower shape of the admin variant.
type adminUpdatedUserPayload struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	CurrentStatus string `json:"currentStatus"`
	StatusID      *int64 `json:"statusId"`
}

// resolveStatusName normalizes the nullable status reference to a display
// label, applying the default when no status is set. This is the only place
// the sentinel is introduced; everything downstream sees one canonical shape.
func resolveStatusName(u *models.User) string {
	if u.StatusName != nil {
		return *u.StatusName
	}
	return common.DefaultStatusName
}

func rosterUserFrom(u *models.User) rosterUserPayload {
	return rosterUserPayload{
		ID:            u.ID,
		Username:      u.Username,
		FullName:      u.FullName,
		Email:         u.Email,
		CurrentStatus: resolveStatusName(u),
		StatusID:      u.StatusID,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func loginUserFrom(u *models.User) loginUserPayload {
	return loginUserPayload{
		ID:            u.ID,
		Username:      u.Username,
		FullName:      u.FullName,
		Email:         u.Email,
		CurrentStatus: resolveStatusName(u),
		StatusID:      u.StatusID,
	}
}

func updatedUserFrom(u *models.User) updatedUserPayload {
	return updatedUserPayload{
		ID:            u.ID,
		Username:      u.Username,
		FullName:      u.FullName,
		CurrentStatus: resolveStatusName(u),
		StatusID:      u.StatusID,
	}
}

func adminUpdatedUserFrom(u *models.User) adminUpdatedUserPayload {
	return adminUpdatedUserPayload{
		ID:            u.ID,
		Username:      u.Username,
		CurrentStatus: resolveStatusName(u),
		StatusID:      u.StatusID,
	}
}
