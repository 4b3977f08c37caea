package mocks

import (
	"github.com/stretchr/testify/mock"
)

type Mailer struct {
	mock.Mock
}

func (m *Mailer) Send(to string, subject string, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}
