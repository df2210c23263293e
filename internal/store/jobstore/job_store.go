package jobstore

import (
	"sync"
	"time"

	"github.com/ykhdr/crack-fnv/pkg/messages"
)

type Status string

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReady      Status = "READY"
	StatusError      Status = "ERROR"
)

type Id string

// Info tracks one asynchronous crack job. Results live only in memory for
// the life of the job; nothing is persisted.
type Info struct {
	ID          Id
	Status      Status
	CreatedAt   time.Time
	Response    *messages.CrackTaskResponse
	ErrorReason string
}

func (i *Info) Copy() *Info {
	cp := *i
	return &cp
}

type Store interface {
	Get(id Id) (*Info, bool)
	Save(info *Info)
	UpdateStatus(id Id, status Status, errorReason string)
	Delete(id Id)
}

type store struct {
	data map[Id]*Info
	m    sync.RWMutex
}

func NewStore() Store {
	return &store{
		data: make(map[Id]*Info),
	}
}

func (s *store) Get(id Id) (*Info, bool) {
	s.m.RLock()
	defer s.m.RUnlock()
	info, exists := s.data[id]
	if !exists {
		return nil, false
	}
	return info.Copy(), true
}

func (s *store) Save(info *Info) {
	s.m.Lock()
	defer s.m.Unlock()
	s.data[info.ID] = info.Copy()
}

func (s *store) UpdateStatus(id Id, status Status, errorReason string) {
	s.m.Lock()
	defer s.m.Unlock()
	info, exists := s.data[id]
	if !exists {
		return
	}
	info.Status = status
	info.ErrorReason = errorReason
}

func (s *store) Delete(id Id) {
	s.m.Lock()
	defer s.m.Unlock()
	delete(s.data, id)
}
