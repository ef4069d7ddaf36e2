package models

// Closed enumerations shared across collections. Values outside these sets are
// rejected at the API boundary rather than trusted from client input.

type UserRole string

const (
	RoleShopOwner UserRole = "shop_owner"
	RoleMechanic  UserRole = "mechanic"
	RoleBuyer     UserRole = "buyer"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleShopOwner, RoleMechanic, RoleBuyer:
		return true
	}
	return false
}

type PostType string

const (
	PostTypeRequest    PostType = "request"
	PostTypeSocialSale PostType = "social_sale"
)

func (t PostType) Valid() bool {
	return t == PostTypeRequest || t == PostTypeSocialSale
}

type PostStatus string

const (
	PostStatusActive   PostStatus = "active"
	PostStatusResolved PostStatus = "resolved"
	PostStatusExpired  PostStatus = "expired"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusActive, PostStatusResolved, PostStatusExpired:
		return true
	}
	return false
}

type ListingCondition string

const (
	ConditionNew         ListingCondition = "new"
	ConditionUsed        ListingCondition = "used"
	ConditionRefurbished ListingCondition = "refurbished"
)

func (c ListingCondition) Valid() bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionRefurbished:
		return true
	}
	return false
}

type ListingStatus string

const (
	ListingStatusActive  ListingStatus = "active"
	ListingStatusSold    ListingStatus = "sold"
	ListingStatusExpired ListingStatus = "expired"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case ListingStatusActive, ListingStatusSold, ListingStatusExpired:
		return true
	}
	return false
}

type NotificationType string

const (
	NotificationResponse      NotificationType = "response"
	NotificationMention       NotificationType = "mention"
	NotificationCategoryMatch NotificationType = "category_match"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationResponse, NotificationMention, NotificationCategoryMatch:
		return true
	}
	return false
}

type ActivitySignalType string

const (
	SignalWhatsAppTap   ActivitySignalType = "whatsapp_tap"
	SignalPostView      ActivitySignalType = "post_view"
	SignalResponseClick ActivitySignalType = "response_click"
)

func (t ActivitySignalType) Valid() bool {
	switch t {
	case SignalWhatsAppTap, SignalPostView, SignalResponseClick:
		return true
	}
	return false
}

type ReportReason string

const (
	ReasonSpam          ReportReason = "spam"
	ReasonInappropriate ReportReason = "inappropriate"
	ReasonFake          ReportReason = "fake"
	ReasonScam          ReportReason = "scam"
	ReasonOther         ReportReason = "other"
)

func (r ReportReason) Valid() bool {
	switch r {
	case ReasonSpam, ReasonInappropriate, ReasonFake, ReasonScam, ReasonOther:
		return true
	}
	return false
}

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportReviewed  ReportStatus = "reviewed"
	ReportDismissed ReportStatus = "dismissed"
	ReportActioned  ReportStatus = "actioned"
)

type ReportTargetType string

const (
	TargetPost     ReportTargetType = "post"
	TargetResponse ReportTargetType = "response"
	TargetUser     ReportTargetType = "user"
	TargetShop     ReportTargetType = "shop"
)

func (t ReportTargetType) Valid() bool {
	switch t {
	case TargetPost, TargetResponse, TargetUser, TargetShop:
		return true
	}
	return false
}

// LocationZone is a physical sub-area of Kisekka market.
type LocationZone string

var LocationZones = []LocationZone{"KM1", "KM2", "KM3", "KM4", "KM5", "Other"}

func (z LocationZone) Valid() bool {
	for _, known := range LocationZones {
		if z == known {
			return true
		}
	}
	return false
}

// PartCategory is a closed set of spare-part categories.
type PartCategory string

var PartCategories = []PartCategory{
	"Engine Parts",
	"Body Parts",
	"Electronics",
	"Suspension",
	"Brakes",
	"Transmission",
	"Interior",
	"Exterior",
	"Lights",
	"Tyres & Wheels",
	"Accessories",
	"Other",
}

func (c PartCategory) Valid() bool {
	for _, known := range PartCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ResponsePostType discriminates which collection a response's parent lives in.
type ResponsePostType string

const (
	ResponseToFeed        ResponsePostType = "feed"
	ResponseToMarketplace ResponsePostType = "marketplace"
)

func (t ResponsePostType) Valid() bool {
	return t == ResponseToFeed || t == ResponseToMarketplace
}
