package domain

// UpgradePromptPage is the listing page on which restricted callers see the upgrade prompt.
const UpgradePromptPage = 3

// AccessDecision is the outcome of gating a listing page.
type AccessDecision struct {
	Serve             bool `json:"serve"`
	ShowUpgradePrompt bool `json:"show_upgrade_prompt"`
}

// CanServePage decides how a listing page is served to the caller.
// Pages are always served; restricted callers get the prompt on exactly UpgradePromptPage.
func CanServePage(session *Session, page int) AccessDecision {
	return AccessDecision{
		Serve:             true,
		ShowUpgradePrompt: session.Tier() == TierRestricted && page == UpgradePromptPage,
	}
}
