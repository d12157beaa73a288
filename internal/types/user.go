package types

import "github.com/shopspring/decimal"

// Профиль пользователя. Меняется только целиком или через ProfilePatch.
type UserProfile struct {
	UserID        string          `json:"userId"`
	Nickname      string          `json:"nickname"`
	AvatarURL     string          `json:"avatarUrl"`
	RoleType      RoleType        `json:"roleType"`
	IsCertified   bool            `json:"isCertified"`
	AccountStatus AccountStatus   `json:"accountStatus"`
	CoinBalance   decimal.Decimal `json:"coinBalance"`
	FrozenBalance decimal.Decimal `json:"frozenBalance"`
	StudentID     *string         `json:"studentId,omitempty"`
	Email         *string         `json:"email,omitempty"`
}

// Глубокая копия, чтобы снаружи нельзя было поменять профиль по указателю
func (u UserProfile) Clone() UserProfile {
	c := u
	if u.StudentID != nil {
		s := *u.StudentID
		c.StudentID = &s
	}
	if u.Email != nil {
		e := *u.Email
		c.Email = &e
	}
	return c
}

func (u UserProfile) IsAdmin() bool {
	return u.RoleType == RoleAdmin || u.RoleType == RoleSuperAdmin
}

func (u UserProfile) IsFrozen() bool {
	return u.AccountStatus == StatusFrozen
}

// Частичное обновление профиля: nil - поле не трогаем
type ProfilePatch struct {
	Nickname      *string        `json:"nickname,omitempty"`
	AvatarURL     *string        `json:"avatarUrl,omitempty"`
	Email         *string        `json:"email,omitempty"`
	StudentID     *string        `json:"studentId,omitempty"`
	IsCertified   *bool          `json:"isCertified,omitempty"`
	AccountStatus *AccountStatus `json:"accountStatus,omitempty"`
	RoleType      *RoleType      `json:"roleType,omitempty"`
}

func (p ProfilePatch) Empty() bool {
	return p == ProfilePatch{}
}

// Apply возвращает новый профиль, исходный не меняется
func (p ProfilePatch) Apply(u UserProfile) UserProfile {
	out := u.Clone()
	if p.Nickname != nil {
		out.Nickname = *p.Nickname
	}
	if p.AvatarURL != nil {
		out.AvatarURL = *p.AvatarURL
	}
	if p.Email != nil {
		e := *p.Email
		out.Email = &e
	}
	if p.StudentID != nil {
		s := *p.StudentID
		out.StudentID = &s
	}
	if p.IsCertified != nil {
		out.IsCertified = *p.IsCertified
	}
	if p.AccountStatus != nil {
		out.AccountStatus = *p.AccountStatus
	}
	if p.RoleType != nil {
		out.RoleType = *p.RoleType
	}
	return out
}

// Данные профиля из вичата при логине
type WechatProfile struct {
	NickName  string `json:"nickName"`
	AvatarURL string `json:"avatarUrl"`
}

type LoginParams struct {
	Code     string        `json:"code" validate:"required"`
	UserInfo WechatProfile `json:"userInfo"`
}

type LoginResult struct {
	Token    string      `json:"token"`
	UserInfo UserProfile `json:"userInfo"`
}

type BindParams struct {
	StudentID  string `json:"studentID" validate:"required"`
	RealName   string `json:"realName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	VerifyCode string `json:"verifyCode" validate:"required"`
}

type SendCodeParams struct {
	Email string      `json:"email" validate:"required,email"`
	Type  CodePurpose `json:"type" validate:"required,oneof=bind update reset"`
}

type UpdateProfileParams struct {
	Nickname   *string `json:"nickname,omitempty" validate:"omitempty,min=1,max=32"`
	AvatarURL  *string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	VerifyCode *string `json:"verifyCode,omitempty"`
}

// Поля профиля, которые меняет этот запрос
func (p UpdateProfileParams) Patch() ProfilePatch {
	return ProfilePatch{
		Nickname:  p.Nickname,
		AvatarURL: p.AvatarURL,
		Email:     p.Email,
	}
}

type UploadResult struct {
	URL  string `json:"url"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}
