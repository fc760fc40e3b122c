package sender

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/savings-accounts/internal/lib/smtp"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

type MockSMTPWriter struct {
	mock.Mock
}

func (m *MockSMTPWriter) Write(p []byte) (n int, err error) {
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockSMTPWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

const greetingBody = `{"account_id":7,"account_no":"40817810000000000007","client_name":"Ivan","client_email":"ivan@example.com","product_name":"Savings Plus","date":"2024-08-12"}`

func TestService_SendBirthdayGreeting(t *testing.T) {
	tests := []struct {
		name          string
		body          []byte
		setupMocks    func(*MockTransport)
		expectedError bool
		errorMessage  string
	}{
		{
			name: "success",
			body: []byte(greetingBody),
			setupMocks: func(tr *MockTransport) {
				client := new(MockSMTPClient)
				writer := new(MockSMTPWriter)

				tr.On("GetSMTPUser").Return("bank@example.com")
				tr.On("Connect").Return(client, nil).Once()
				client.On("Mail", "bank@example.com").Return(nil).Once()
				client.On("Rcpt", "ivan@example.com").Return(nil).Once()
				client.On("Data").Return(writer, nil).Once()
				writer.On("Write", mock.MatchedBy(func(p []byte) bool {
					msg := string(p)
					return strings.Contains(msg, "To: ivan@example.com") &&
						strings.Contains(msg, "Ivan") &&
						strings.Contains(msg, "40817810000000000007")
				})).Return(100, nil).Once()
				writer.On("Close").Return(nil).Once()
				client.On("Quit").Return(nil).Once()
				client.On("Close").Return(nil).Once()
			},
		},
		{
			name:          "invalid JSON",
			body:          []byte(`invalid json`),
			setupMocks:    func(_ *MockTransport) {},
			expectedError: true,
			errorMessage:  "error unmarshalling message",
		},
		{
			name:          "no recipient",
			body:          []byte(`{"account_id":7,"client_name":"Ivan"}`),
			setupMocks:    func(_ *MockTransport) {},
			expectedError: true,
			errorMessage:  ErrNoRecipient.Error(),
		},
		{
			name: "SMTP connection error",
			body: []byte(greetingBody),
			setupMocks: func(tr *MockTransport) {
				tr.On("GetSMTPUser").Return("bank@example.com")
				tr.On("Connect").Return(nil, errors.New("connection error")).Once()
			},
			expectedError: true,
			errorMessage:  "connection error",
		},
		{
			name: "SMTP Rcpt error",
			body: []byte(greetingBody),
			setupMocks: func(tr *MockTransport) {
				client := new(MockSMTPClient)
				tr.On("GetSMTPUser").Return("bank@example.com")
				tr.On("Connect").Return(client, nil).Once()
				client.On("Mail", "bank@example.com").Return(nil).Once()
				client.On("Rcpt", "ivan@example.com").Return(errors.New("rcpt error")).Once()
				client.On("Close").Return(nil).Once()
			},
			expectedError: true,
			errorMessage:  "rcpt error",
		},
		{
			name: "SMTP Data error",
			body: []byte(greetingBody),
			setupMocks: func(tr *MockTransport) {
				client := new(MockSMTPClient)
				tr.On("GetSMTPUser").Return("bank@example.com")
				tr.On("Connect").Return(client, nil).Once()
				client.On("Mail", "bank@example.com").Return(nil).Once()
				client.On("Rcpt", "ivan@example.com").Return(nil).Once()
				client.On("Data").Return(nil, errors.New("data error")).Once()
				client.On("Close").Return(nil).Once()
			},
			expectedError: true,
			errorMessage:  "data error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := new(MockTransport)
			service := NewService(transport, newNoopLogger())

			tt.setupMocks(transport)

			err := service.SendBirthdayGreeting(tt.body)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMessage)
			} else {
				assert.NoError(t, err)
			}

			transport.AssertExpectations(t)
		})
	}
}
