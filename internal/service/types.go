package service

// Wire types for the SplitEase RPC services. These are hand-written structs
// serialized as JSON by the rpc package codec; the domain models stay free
// of transport tags.

// Group is the wire representation of a group.
type Group struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Currency  string `json:"currency"`
	CreatedAt int64  `json:"createdAt"`
}

// Member is the wire representation of a group member.
type Member struct {
	ID        string `json:"id"`
	GroupID   string `json:"groupId"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// Expense is the wire representation of an expense.
type Expense struct {
	ID           string   `json:"id"`
	GroupID      string   `json:"groupId"`
	Title        string   `json:"title"`
	Amount       float64  `json:"amount"`
	PaidBy       string   `json:"paidBy"`
	Participants []string `json:"participants"`
	CreatedAt    int64    `json:"createdAt"`
}

// Balance is the wire representation of a member's net balance.
type Balance struct {
	MemberID string  `json:"memberId"`
	Amount   float64 `json:"amount"`
}

// Notification is the wire representation of a settlement notification.
type Notification struct {
	ID          string  `json:"id"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	Amount      float64 `json:"amount"`
	Message     string  `json:"message"`
	GroupID     string  `json:"groupId"`
	PaymentLink string  `json:"paymentLink,omitempty"`
	CreatedAt   int64   `json:"createdAt"`
	Status      string  `json:"status"`
}

// Profile is the wire representation of a user profile. The password hash
// never leaves the server.
type Profile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	PaymentHandle string `json:"paymentHandle,omitempty"`
	CreatedAt     int64  `json:"createdAt"`
}

// Ledger service messages.

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type CreateGroupResponse struct {
	Group Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}

type AddMemberRequest struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
}

type AddMemberResponse struct {
	Member Member `json:"member"`
}

type ListMembersRequest struct {
	GroupID string `json:"groupId"`
}

type ListMembersResponse struct {
	Members []Member `json:"members"`
}

type AddExpenseRequest struct {
	GroupID      string   `json:"groupId"`
	Title        string   `json:"title"`
	Amount       float64  `json:"amount"`
	PaidBy       string   `json:"paidBy"`
	Participants []string `json:"participants,omitempty"`
}

type AddExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type RemoveExpenseRequest struct {
	GroupID   string `json:"groupId"`
	ExpenseID string `json:"expenseId"`
}

type RemoveExpenseResponse struct{}

type ListExpensesRequest struct {
	GroupID string `json:"groupId"`
}

type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

type GetBalancesRequest struct {
	GroupID string `json:"groupId"`
}

type GetBalancesResponse struct {
	Balances []Balance `json:"balances"`
}

// Settlement service messages.

type SendNotificationRequest struct {
	GroupID  string  `json:"groupId"`
	MemberID string  `json:"memberId"`
	Amount   float64 `json:"amount"`
}

type SendNotificationResponse struct {
	Notification Notification `json:"notification"`
	// PaymentLink duplicates Notification.PaymentLink for callers that only
	// need the link (e.g. to render a QR code). Empty when the recipient
	// has no payment handle on file.
	PaymentLink string `json:"paymentLink,omitempty"`
}

type ListNotificationsRequest struct{}

type ListNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

type MarkNotificationReadRequest struct {
	NotificationID string `json:"notificationId"`
}

type MarkNotificationReadResponse struct{}

// Auth service messages.

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	Profile Profile `json:"profile"`
	Token   string  `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Profile Profile `json:"profile"`
	Token   string  `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	Profile Profile `json:"profile"`
}

type UpdatePaymentHandleRequest struct {
	PaymentHandle string `json:"paymentHandle"`
}

type UpdatePaymentHandleResponse struct {
	Profile Profile `json:"profile"`
}
