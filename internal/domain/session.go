package domain

import "time"

// Session — состояние консоли одной вкладки браузера (аналог localStorage + state SPA).
type Session struct {
	ID         string
	Token      string // bearer-токен; пустой, если администратор не вошёл
	LoginEmail string // email остаётся в поле после неудачного входа
	Form       Form
	CreatedAt  time.Time
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
	}
}

func (s *Session) LoggedIn() bool {
	return s.Token != ""
}

// Login сохраняет токен и очищает поля входа.
func (s *Session) Login(token string) {
	s.Token = token
	s.LoginEmail = ""
}

// Logout удаляет токен. Состояние формы не трогается, она просто скрывается.
func (s *Session) Logout() {
	s.Token = ""
}
