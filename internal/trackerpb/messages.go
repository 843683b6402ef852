package trackerpb

import (
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ----- auth -----

type RegisterRequest struct {
	Email    string // 1
	Password string // 2
	Name     string // 3
}

func (m *RegisterRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Email)
	b = appendString(b, 2, m.Password)
	return appendString(b, 3, m.Name)
}

func (m *RegisterRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if typ != protowire.BytesType {
			return 0
		}
		switch num {
		case 1:
			return consumeString(b, &m.Email)
		case 2:
			return consumeString(b, &m.Password)
		case 3:
			return consumeString(b, &m.Name)
		}
		return 0
	})
}

type RegisterResponse struct {
	UserId       string // 1
	Token        string // 2
	RefreshToken string // 3
}

func (m *RegisterResponse) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.UserId)
	b = appendString(b, 2, m.Token)
	return appendString(b, 3, m.RefreshToken)
}

func (m *RegisterResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if typ != protowire.BytesType {
			return 0
		}
		switch num {
		case 1:
			return consumeString(b, &m.UserId)
		case 2:
			return consumeString(b, &m.Token)
		case 3:
			return consumeString(b, &m.RefreshToken)
		}
		return 0
	})
}

type LoginRequest struct {
	Email    string // 1
	Password string // 2
}

func (m *LoginRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Email)
	return appendString(b, 2, m.Password)
}

func (m *LoginRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if typ != protowire.BytesType {
			return 0
		}
		switch num {
		case 1:
			return consumeString(b, &m.Email)
		case 2:
			return consumeString(b, &m.Password)
		}
		return 0
	})
}

type LoginResponse struct {
	Token        string // 1
	UserId       string // 2
	Name         string // 3
	Email        string // 4
	RefreshToken string // 5
}

func (m *LoginResponse) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Token)
	b = appendString(b, 2, m.UserId)
	b = appendString(b, 3, m.Name)
	b = appendString(b, 4, m.Email)
	return appendString(b, 5, m.RefreshToken)
}

func (m *LoginResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if typ != protowire.BytesType {
			return 0
		}
		switch num {
		case 1:
			return consumeString(b, &m.Token)
		case 2:
			return consumeString(b, &m.UserId)
		case 3:
			return consumeString(b, &m.Name)
		case 4:
			return consumeString(b, &m.Email)
		case 5:
			return consumeString(b, &m.RefreshToken)
		}
		return 0
	})
}

type RefreshRequest struct {
	RefreshToken string // 1
}

func (m *RefreshRequest) AppendWire(b []byte) []byte {
	return appendString(b, 1, m.RefreshToken)
}

func (m *RefreshRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 && typ == protowire.BytesType {
			return consumeString(b, &m.RefreshToken)
		}
		return 0
	})
}

type RefreshResponse struct {
	Token        string // 1
	RefreshToken string // 2
}

func (m *RefreshResponse) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Token)
	return appendString(b, 2, m.RefreshToken)
}

func (m *RefreshResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if typ != protowire.BytesType {
			return 0
		}
		switch num {
		case 1:
			return consumeString(b, &m.Token)
		case 2:
			return consumeString(b, &m.RefreshToken)
		}
		return 0
	})
}

// Empty is used by calls that take or return nothing.
type Empty struct{}

func (*Empty) AppendWire(b []byte) []byte { return b }

func (*Empty) UnmarshalWire(b []byte) error {
	return walk(b, func(protowire.Number, protowire.Type, []byte) int { return 0 })
}

type User struct {
	Id        string                 // 1
	Name      string                 // 2
	Email     string                 // 3
	CreatedAt *timestamppb.Timestamp // 4
}

func (m *User) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Id)
	b = appendString(b, 2, m.Name)
	b = appendString(b, 3, m.Email)
	return appendTimestamp(b, 4, m.CreatedAt)
}

func (m *User) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if typ != protowire.BytesType {
			return 0
		}
		switch num {
		case 1:
			return consumeString(b, &m.Id)
		case 2:
			return consumeString(b, &m.Name)
		case 3:
			return consumeString(b, &m.Email)
		case 4:
			return consumeTimestamp(b, &m.CreatedAt)
		}
		return 0
	})
}

type GetProfileResponse struct {
	User *User // 1
}

func (m *GetProfileResponse) AppendWire(b []byte) []byte {
	if m.User == nil {
		return b
	}
	return appendMessage(b, 1, m.User)
}

func (m *GetProfileResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 && typ == protowire.BytesType {
			m.User = &User{}
			return consumeMessage(b, m.User)
		}
		return 0
	})
}

// ----- applications -----

type Application struct {
	Id        string                 // 1
	Title     string                 // 2
	Type      string                 // 3
	Status    string                 // 4
	Deadline  *timestamppb.Timestamp // 5
	Notes     string                 // 6
	UserId    string                 // 7
	CreatedAt *timestamppb.Timestamp // 8
	UpdatedAt *timestamppb.Timestamp // 9
}

func (m *Application) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Id)
	b = appendString(b, 2, m.Title)
	b = appendString(b, 3, m.Type)
	b = appendString(b, 4, m.Status)
	b = appendTimestamp(b, 5, m.Deadline)
	b = appendString(b, 6, m.Notes)
	b = appendString(b, 7, m.UserId)
	b = appendTimestamp(b, 8, m.CreatedAt)
	return appendTimestamp(b, 9, m.UpdatedAt)
}

func (m *Application) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if typ != protowire.BytesType {
			return 0
		}
		switch num {
		case 1:
			return consumeString(b, &m.Id)
		case 2:
			return consumeString(b, &m.Title)
		case 3:
			return consumeString(b, &m.Type)
		case 4:
			return consumeString(b, &m.Status)
		case 5:
			return consumeTimestamp(b, &m.Deadline)
		case 6:
			return consumeString(b, &m.Notes)
		case 7:
			return consumeString(b, &m.UserId)
		case 8:
			return consumeTimestamp(b, &m.CreatedAt)
		case 9:
			return consumeTimestamp(b, &m.UpdatedAt)
		}
		return 0
	})
}

type CreateApplicationRequest struct {
	Title    string                 // 1
	Type     string                 // 2
	Status   string                 // 3
	Deadline *timestamppb.Timestamp // 4
	Notes    string                 // 5
}

func (m *CreateApplicationRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Title)
	b = appendString(b, 2, m.Type)
	b = appendString(b, 3, m.Status)
	b = appendTimestamp(b, 4, m.Deadline)
	return appendString(b, 5, m.Notes)
}

func (m *CreateApplicationRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if typ != protowire.BytesType {
			return 0
		}
		switch num {
		case 1:
			return consumeString(b, &m.Title)
		case 2:
			return consumeString(b, &m.Type)
		case 3:
			return consumeString(b, &m.Status)
		case 4:
			return consumeTimestamp(b, &m.Deadline)
		case 5:
			return consumeString(b, &m.Notes)
		}
		return 0
	})
}

// ApplicationResponse wraps the single application returned by
// Create, Get and Update.
type ApplicationResponse struct {
	Application *Application // 1
}

func (m *ApplicationResponse) AppendWire(b []byte) []byte {
	if m.Application == nil {
		return b
	}
	return appendMessage(b, 1, m.Application)
}

func (m *ApplicationResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 && typ == protowire.BytesType {
			m.Application = &Application{}
			return consumeMessage(b, m.Application)
		}
		return 0
	})
}

type ListApplicationsRequest struct {
	Status string // 1, optional filter
}

func (m *ListApplicationsRequest) AppendWire(b []byte) []byte {
	return appendString(b, 1, m.Status)
}

func (m *ListApplicationsRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 && typ == protowire.BytesType {
			return consumeString(b, &m.Status)
		}
		return 0
	})
}

type ListApplicationsResponse struct {
	Applications []*Application // 1
}

func (m *ListApplicationsResponse) AppendWire(b []byte) []byte {
	for _, a := range m.Applications {
		b = appendMessage(b, 1, a)
	}
	return b
}

func (m *ListApplicationsResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 && typ == protowire.BytesType {
			a := &Application{}
			n := consumeMessage(b, a)
			if n > 0 {
				m.Applications = append(m.Applications, a)
			}
			return n
		}
		return 0
	})
}

// IDRequest carries the application id for Get and Delete.
type IDRequest struct {
	Id string // 1
}

func (m *IDRequest) AppendWire(b []byte) []byte {
	return appendString(b, 1, m.Id)
}

func (m *IDRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 && typ == protowire.BytesType {
			return consumeString(b, &m.Id)
		}
		return 0
	})
}

// UpdateApplicationRequest only touches fields that are present on the wire.
type UpdateApplicationRequest struct {
	Id            string                 // 1
	Title         *string                // 2
	Type          *string                // 3
	Status        *string                // 4
	Deadline      *timestamppb.Timestamp // 5
	Notes         *string                // 6
	ClearDeadline bool                   // 7
}

func (m *UpdateApplicationRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Id)
	b = appendOptString(b, 2, m.Title)
	b = appendOptString(b, 3, m.Type)
	b = appendOptString(b, 4, m.Status)
	b = appendTimestamp(b, 5, m.Deadline)
	b = appendOptString(b, 6, m.Notes)
	return appendBool(b, 7, m.ClearDeadline)
}

func (m *UpdateApplicationRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 7 && typ == protowire.VarintType {
			var v uint64
			n := consumeVarint(b, &v)
			m.ClearDeadline = protowire.DecodeBool(v)
			return n
		}
		if typ != protowire.BytesType {
			return 0
		}
		switch num {
		case 1:
			return consumeString(b, &m.Id)
		case 2:
			return consumeOptString(b, &m.Title)
		case 3:
			return consumeOptString(b, &m.Type)
		case 4:
			return consumeOptString(b, &m.Status)
		case 5:
			return consumeTimestamp(b, &m.Deadline)
		case 6:
			return consumeOptString(b, &m.Notes)
		}
		return 0
	})
}

type StatusCount struct {
	Status string // 1
	Count  int64  // 2
}

func (m *StatusCount) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Status)
	return appendVarint(b, 2, uint64(m.Count))
}

func (m *StatusCount) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeString(b, &m.Status)
		case num == 2 && typ == protowire.VarintType:
			var v uint64
			n := consumeVarint(b, &v)
			m.Count = int64(v)
			return n
		}
		return 0
	})
}

type ApplicationStatsResponse struct {
	Total    int64          // 1
	Upcoming int64          // 2
	ByStatus []*StatusCount // 3
}

func (m *ApplicationStatsResponse) AppendWire(b []byte) []byte {
	b = appendVarint(b, 1, uint64(m.Total))
	b = appendVarint(b, 2, uint64(m.Upcoming))
	for _, c := range m.ByStatus {
		b = appendMessage(b, 3, c)
	}
	return b
}

func (m *ApplicationStatsResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch {
		case num == 1 && typ == protowire.VarintType:
			var v uint64
			n := consumeVarint(b, &v)
			m.Total = int64(v)
			return n
		case num == 2 && typ == protowire.VarintType:
			var v uint64
			n := consumeVarint(b, &v)
			m.Upcoming = int64(v)
			return n
		case num == 3 && typ == protowire.BytesType:
			c := &StatusCount{}
			n := consumeMessage(b, c)
			if n > 0 {
				m.ByStatus = append(m.ByStatus, c)
			}
			return n
		}
		return 0
	})
}
