package shared

const (
	UserID   = "user_id"
	UserRole = "user_role"

	RoleAdmin     = "admin"
	RoleModerator = "moderator"

	PostStatusPending  = "pending"
	PostStatusApproved = "approved"
	PostStatusRejected = "rejected"

	CategoryStatusActive   = "active"
	CategoryStatusInactive = "inactive"

	CategoryLevelTopic    = 1
	CategoryLevelSubtopic = 2

	SearchTypePostTitle = "post_title"
	SearchTypeUsername  = "username"
	SearchTypeStatus    = "status"
	SearchTypeDate      = "date"

	DateRangeToday      = "today"
	DateRangeLast7Days  = "last_7_days"
	DateRangeLast30Days = "last_30_days"
	DateRangeCustom     = "custom"

	// Calendar-day format accepted by the `date` search mode and the
	// custom report range.
	DateLayout = "2006-01-02"
)

func IsValidPostStatus(status string) bool {
	switch status {
	case PostStatusPending, PostStatusApproved, PostStatusRejected:
		return true
	}
	return false
}

func IsValidSearchType(searchType string) bool {
	switch searchType {
	case SearchTypePostTitle, SearchTypeUsername, SearchTypeStatus, SearchTypeDate:
		return true
	}
	return false
}
