package dto

import (
	"garagebook/internal/domains/user/model"
	"garagebook/shared"
	"garagebook/shared/constant"
	gDto "garagebook/shared/dto"
	"time"
)

type UserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	LastLogin *string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Role = model.Role

	if model.LastLogin != nil {
		lastLogin := model.LastLogin.Format(constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(model.Metadata)
}

// UpdateUserRequest is the admin edit. Only name and role can change.
type UpdateUserRequest struct {
	Name *string `json:"name,omitempty" db:"name" validate:"omitempty,min=1,max=100"`
	Role *string `json:"role,omitempty" db:"role" validate:"omitempty,role"`
}

func (r UpdateUserRequest) IsEmpty() bool {
	return r.Name == nil && r.Role == nil
}

type UpdateLastLogin struct {
	LastLogin time.Time `db:"last_login"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

// ListFilter builds the where clause for the admin user list. Empty values are ignored.
func ListFilter(role, email string) gDto.FilterGroup {
	filters := []any{}

	if role != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldRole, Operator: gDto.FilterOperatorEq, Value: role, Table: model.TableName})
	}

	if email != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldEmail, Operator: gDto.FilterOperatorLike, Value: email, Table: model.TableName})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}
