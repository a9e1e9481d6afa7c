package pipeline

import (
	"strings"
	"time"

	"github.com/ternarybob/docuassist/internal/models"
)

// demoEntry is one canned topic in the fallback knowledge base used when
// external providers are unavailable.
type demoEntry struct {
	keywords []string
	response string
	docs     []models.RetrievedDocument
}

// demoKnowledgeBase covers the common support topics so the service stays
// usable without API keys or a reachable vector index.
var demoKnowledgeBase = []demoEntry{
	{
		keywords: []string{"reset password", "forgot password", "change password", "password"},
		response: "To reset your password:\n\n1. Go to the login page\n2. Click 'Forgot Password?' link\n3. Enter your email address\n4. Check your email for a reset link (valid for 24 hours)\n5. Click the link and create a new password (minimum 8 characters with uppercase, lowercase, and numbers)\n6. Sign in with your new password\n\nIf you don't receive the email within 5 minutes, check your spam folder or contact support@company.com",
		docs: []models.RetrievedDocument{
			{Text: "Password reset requires email verification. Reset links expire after 24 hours.", RelevanceScore: 0.95},
		},
	},
	{
		keywords: []string{"pricing", "cost", "refund", "billing", "payment"},
		response: "Pricing & Billing Information:\n\nPlans:\n- Starter: $29/month (100 users)\n- Professional: $99/month (500 users)\n- Enterprise: Custom pricing\n\nPayment Methods:\nVisa, Mastercard, American Express, and bank transfers\n\nBilling Benefits:\n- 20% discount on annual plans\n- 30-day money-back guarantee\n- Cancel anytime\n\nFor more details, visit your Billing page or contact support.",
		docs: []models.RetrievedDocument{
			{Text: "Annual billing plans receive 20% discount. All plans include 30-day money-back guarantee.", RelevanceScore: 0.92},
		},
	},
	{
		keywords: []string{"contact support", "customer support", "help", "support"},
		response: "How to Contact Support:\n\nEmail: support@company.com (24 hours, business days)\nLive Chat: Monday-Friday, 9 AM - 5 PM EST\nPhone: 1-800-COMPANY (Enterprise only, M-F 9 AM - 6 PM EST)\nHelp Center: help.company.com (instant answers, 24/7)\nCommunity: community.company.com (get help from other users)\n\nResponse Times:\nCritical issues: 1 hour\nHigh priority: 4 hours\nMedium priority: 24 hours\nLow priority: 48 hours",
		docs: []models.RetrievedDocument{
			{Text: "Support team available via email, live chat, and community forum. Enterprise customers have phone support.", RelevanceScore: 0.94},
		},
	},
	{
		keywords: []string{"create account", "sign up", "new account", "registration"},
		response: "Creating a New Account:\n\n1. Visit our website and click 'Sign Up'\n2. Enter your email address\n3. Create a strong password (min 8 chars: uppercase, lowercase, number)\n4. Select your organization type\n5. Accept Terms of Service & Privacy Policy\n6. Click 'Create Account'\n7. Verify email via link (check spam folder if needed)\n8. Complete your profile\n\nYour account includes:\n- 30-day free trial with full features\n- Community support access\n- Basic analytics dashboard",
		docs: []models.RetrievedDocument{
			{Text: "New accounts get 30-day free trial access to all features with community support included.", RelevanceScore: 0.96},
		},
	},
	{
		keywords: []string{"security", "2fa", "two factor", "encryption", "data privacy"},
		response: "Security & Privacy Features:\n\nTwo-Factor Authentication (2FA):\n- Extra layer of protection\n- Use authenticator app (Google Authenticator, Authy) or SMS\n- Enable in Settings > Security\n\nData Protection:\n- All data encrypted in transit (HTTPS/TLS)\n- GDPR & CCPA compliant\n- SOC 2 Type II certified\n- You own your data and can export anytime\n\nLogin Security:\n- Auto-logout after 5 minutes inactivity\n- Session management available\n- Unusual login alerts via email",
		docs: []models.RetrievedDocument{
			{Text: "All data is encrypted with TLS. 2FA available for extra security. GDPR and CCPA compliant.", RelevanceScore: 0.93},
		},
	},
}

const demoFallbackResponse = "I'm running in demo mode with limited knowledge. Here's what I can help with:\n\n- Password Reset\n- Pricing & Billing\n- Contact Support\n- Account Creation\n- Security Features\n\nPlease ask about any of these topics for detailed information!"

// answerDemo serves a query from the built-in knowledge base by keyword
// match. Generation latency is simulated since no model is called.
func (p *Pipeline) answerDemo(query models.Query, queryID string, startTime time.Time) *models.QueryResult {
	retrievalStart := time.Now()
	queryLower := strings.ToLower(query.Text)

	var response string
	var retrieved []models.RetrievedDocument
	for _, entry := range demoKnowledgeBase {
		for _, keyword := range entry.keywords {
			if strings.Contains(queryLower, keyword) {
				response = entry.response
				retrieved = entry.docs
				break
			}
		}
		if response != "" {
			break
		}
	}

	if response == "" {
		response = demoFallbackResponse
		retrieved = []models.RetrievedDocument{
			{Text: "Demo mode - Limited knowledge base", RelevanceScore: 0.5},
		}
	}

	retrievalLatency := float64(time.Since(retrievalStart).Microseconds()) / 1000.0

	result := &models.QueryResult{
		QueryID:            queryID,
		Response:           response,
		RetrievedDocuments: retrieved,
		Metrics: models.LatencyMetrics{
			RetrievalLatencyMs:  retrievalLatency,
			GenerationLatencyMs: 150.0, // simulated LLM latency
			TotalLatencyMs:      float64(time.Since(startTime).Microseconds()) / 1000.0,
			DocumentCount:       len(retrieved),
		},
		Success: true,
		Mode:    "demo",
	}

	p.recordHistory(query, result)
	return result
}
