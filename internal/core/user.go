package core

import "math"

// User represents a participant that can send and receive coin. In the
// simulation, ordinary users are puppeteered by the transaction generator;
// Employees additionally hold one as their coinbase-reward receiver.
type User struct {
	Name    string
	Balance float64
}

// NewUser creates a User with the given name and starting balance.
func NewUser(name string, balance float64) *User {
	return &User{Name: name, Balance: balance}
}

// CreateTransaction builds a transaction from u to receiver, stamped with
// the employee name that will eventually build the block carrying it.
func (u *User) CreateTransaction(amount float64, receiver *User, employeeName string) *Transaction {
	return NewTransaction(u, amount, receiver, employeeName)
}

// CoinbaseUser is the special sender used to mint the block-building reward.
// It has no real balance of its own; its only job is to issue the one
// coinbase transaction for a given block index.
type CoinbaseUser struct {
	User
	BlockIndex int64
}

// NewCoinbaseUser creates a CoinbaseUser for the given block index.
func NewCoinbaseUser(blockIndex int64) *CoinbaseUser {
	return &CoinbaseUser{User: User{Name: "Coinbase User"}, BlockIndex: blockIndex}
}

// CreateTransaction issues the coinbase reward transaction to receiver.
// It takes no amount or employee name: the reward amount is derived from
// the block index and the employee name is the receiver's.
func (c *CoinbaseUser) CreateTransaction(receiver *User) *Transaction {
	return NewTransaction(&c.User, CoinbaseReward(c.BlockIndex), receiver, receiver.Name)
}

// CoinbaseReward computes the block-building reward for block index n:
// 1000 - 999*(sqrt(n)/(sqrt(n)+10)), asymptotically approaching 1 as the
// chain grows and starting near 1000 for the genesis block.
func CoinbaseReward(n int64) float64 {
	sqrtN := math.Sqrt(float64(n))
	return 1000 - 999*(sqrtN/(sqrtN+10))
}

// EmployeeUser is the User object an Employee node uses to receive its own
// coinbase rewards; it always stamps outgoing transactions with its own name
// as the building employee, regardless of who actually calls CreateTransaction.
type EmployeeUser struct {
	User
	EmployeeName string
}

// NewEmployeeUser creates the User object an Employee node uses to collect
// its coinbase rewards.
func NewEmployeeUser(employeeName string) *EmployeeUser {
	return &EmployeeUser{User: User{Name: employeeName}, EmployeeName: employeeName}
}

// CreateTransaction builds a transaction always stamped with this
// employee's own name; unlike User.CreateTransaction it takes no
// employeeName argument.
func (e *EmployeeUser) CreateTransaction(amount float64, receiver *User) *Transaction {
	return NewTransaction(&e.User, amount, receiver, e.EmployeeName)
}
