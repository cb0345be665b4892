package events

import "fmt"

// Broadcast topic keys. The exact strings are part of the client
// contract and must not change shape.

// TopicAdminInquiries receives every new inquiry summary.
func TopicAdminInquiries() string {
	return "admin/inquiries"
}

// TopicAdminInquiry receives messages within one thread, admin side.
func TopicAdminInquiry(inquiryID string) string {
	return fmt.Sprintf("admin/inquiries/%s", inquiryID)
}

// TopicAgentInquiries receives inquiry summaries for one agent's queue,
// keyed by the agent's linked login user.
func TopicAgentInquiries(linkedUserID string) string {
	return fmt.Sprintf("agents/%s/inquiries", linkedUserID)
}

// TopicAgentInquiry receives messages within one thread, agent side.
func TopicAgentInquiry(linkedUserID, inquiryID string) string {
	return fmt.Sprintf("agents/%s/inquiries/%s", linkedUserID, inquiryID)
}

// TopicUserInquiry receives agent/admin replies within one thread for the
// initiating user.
func TopicUserInquiry(userID, inquiryID string) string {
	return fmt.Sprintf("users/%s/inquiries/%s", userID, inquiryID)
}
