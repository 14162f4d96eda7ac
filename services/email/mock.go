package emailsvc

import (
	"sync"

	"github.com/trezcool/academia/core"
)

// ServiceMock records sent messages instead of delivering them; tests only.
type ServiceMock struct {
	mu sync.Mutex

	SentMessages []core.EmailMessage
}

var _ core.EmailService = (*ServiceMock)(nil)

func NewServiceMock() *ServiceMock {
	return &ServiceMock{}
}

func (svc *ServiceMock) SendMessages(messages ...*core.EmailMessage) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	for _, msg := range messages {
		if err := msg.Render(); err != nil {
			continue
		}
		if msg.HasRecipients() && msg.HasContent() {
			svc.SentMessages = append(svc.SentMessages, *msg)
		}
	}
}

func (svc *ServiceMock) Reset() {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.SentMessages = nil
}
