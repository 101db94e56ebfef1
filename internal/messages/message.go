package messages

import "github.com/google/uuid"

// MessageType identifies the kind of payload a Message carries over the
// fabric.
type MessageType int

const (
	MessageTransaction MessageType = iota
	MessageBlockHeader
	MessageStakeholderSignature
	MessageWrappedBlock
	MessageTrainingDeclaration
	MessageEmployeeAlive
	MessageEmployeeFinished
	MessageResultLocalBlockchain
)

// String renders a MessageType for logging.
func (t MessageType) String() string {
	switch t {
	case MessageTransaction:
		return "TRANSACTION"
	case MessageBlockHeader:
		return "BLOCK_HEADER"
	case MessageStakeholderSignature:
		return "STAKEHOLDER_SIGNATURE"
	case MessageWrappedBlock:
		return "WRAPPED_BLOCK"
	case MessageTrainingDeclaration:
		return "TRAINING_DECLARATION"
	case MessageEmployeeAlive:
		return "EMPLOYEE_ALIVE"
	case MessageEmployeeFinished:
		return "EMPLOYEE_FINISHED"
	case MessageResultLocalBlockchain:
		return "RESULT_LOCAL_BLOCKCHAIN"
	default:
		return "UNKNOWN"
	}
}

// Message is the envelope every node sends over the fabric: a type tag
// plus whatever payload that type carries (a *Transaction,
// *TrainingDeclaration, *BlockHeader, *StakeholderSignature,
// *WrappedBlock, a blockchain snapshot, or nil for the bare
// alive/finished notifications). ID is a fabric-wide unique correlation
// id, independent of the payload's own hash-derived id, used purely for
// transport-level tracing (the fabric's drop log cites it); nothing
// deduplicates messages by it.
type Message struct {
	ID      string
	Type    MessageType
	Sender  string
	Content any
}

// NewMessage builds a Message tagged with the sender's name and a fresh
// correlation id.
func NewMessage(msgType MessageType, sender string, content any) Message {
	return Message{ID: uuid.NewString(), Type: msgType, Sender: sender, Content: content}
}
