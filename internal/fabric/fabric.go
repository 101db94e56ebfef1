// Package fabric is the in-process message bus standing in for the
// reference implementation's per-process pipes: every employee node gets
// a Link to send and receive protocol messages, and the Fabric dispatches
// each send according to its message type the way the original
// broadcaster process did.
package fabric

import (
	"log"
	"sync"

	"empower1.com/pot/internal/messages"
	"empower1.com/pot/internal/poterrors"
)

const inboxCapacity = 256

// Link is a node's handle onto the fabric: Send hands a message to the
// fabric for dispatch, Poll/Recv drain whatever has been routed to this
// node so far. It mirrors the poll()/recv()/send() surface the reference
// implementation's employees drive their pipe connections through.
type Link struct {
	name   string
	fabric *Fabric
	inbox  chan messages.Message
}

// Send routes msg through the fabric according to its type.
func (l *Link) Send(msg messages.Message) {
	msg.Sender = l.name
	l.fabric.dispatch(msg)
}

// Poll reports whether a message is waiting to be received without
// blocking.
func (l *Link) Poll() bool {
	return len(l.inbox) > 0
}

// Recv blocks until a message is available and returns it.
func (l *Link) Recv() messages.Message {
	return <-l.inbox
}

// Fabric is the shared dispatcher every employee Link sends through. It
// tracks how many employees have finished their run and forwards the
// eventual result snapshot to the sink exactly once, the way the
// reference implementation's broadcaster process did.
type Fabric struct {
	mu                sync.Mutex
	logger            *log.Logger
	links             map[string]*Link
	employeesNum      int
	finishedEmployees map[string]bool
	sink              chan messages.Message
	resultSent        bool
}

// New builds a Fabric wired for the given employee names, with one Link
// per employee registered for LinkFor to hand out.
func New(employeeNames []string) *Fabric {
	f := &Fabric{
		logger:            log.New(log.Writer(), "FABRIC: ", log.LstdFlags),
		links:             make(map[string]*Link, len(employeeNames)),
		employeesNum:      len(employeeNames),
		finishedEmployees: make(map[string]bool),
		sink:              make(chan messages.Message, len(employeeNames)+1),
	}
	for _, name := range employeeNames {
		f.links[name] = &Link{name: name, fabric: f, inbox: make(chan messages.Message, inboxCapacity)}
	}
	return f
}

// LinkFor returns the Link registered for name, or an error if name was
// never wired into this fabric.
func (f *Fabric) LinkFor(name string) (*Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	link, ok := f.links[name]
	if !ok {
		return nil, poterrors.ErrUnknownNode
	}
	return link, nil
}

// ExternalLink returns a Link usable by a sender that is not itself an
// employee (the transaction generator): it can send into the fabric, and
// since its name never matches an employee, every broadcast it issues
// reaches every employee with nothing excluded.
func (f *Fabric) ExternalLink(name string) *Link {
	return &Link{name: name, fabric: f}
}

// Results returns the channel the harness drains the final blockchain
// snapshot from; only the first RESULT_LOCAL_BLOCKCHAIN sent is forwarded.
func (f *Fabric) Results() <-chan messages.Message {
	return f.sink
}

func (f *Fabric) dispatch(msg messages.Message) {
	switch msg.Type {
	case messages.MessageEmployeeFinished:
		f.mu.Lock()
		f.finishedEmployees[msg.Sender] = true
		done := len(f.finishedEmployees)
		f.mu.Unlock()
		f.logger.Printf("%s finished (%d/%d)", msg.Sender, done, f.employeesNum)
	case messages.MessageResultLocalBlockchain:
		f.mu.Lock()
		alreadySent := f.resultSent
		f.resultSent = true
		f.mu.Unlock()
		if alreadySent {
			return
		}
		f.sink <- msg
	default:
		f.broadcastExcluding(msg.Sender, msg)
	}
}

func (f *Fabric) broadcastExcluding(sender string, msg messages.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, link := range f.links {
		if name == sender {
			continue
		}
		select {
		case link.inbox <- msg:
		default:
			f.logger.Printf("dropping %s (id %s) for %s: inbox full", msg.Type, msg.ID, name)
		}
	}
}

// AllFinished reports whether every employee wired into this fabric has
// sent EMPLOYEE_FINISHED.
func (f *Fabric) AllFinished() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.finishedEmployees) >= f.employeesNum
}
