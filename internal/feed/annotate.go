package feed

import "marketplace/internal/models"

// AnnotatePosts stamps caller-relative flags on posts and their nested authors.
// is_following on the author comes from the query; for anonymous viewers it is
// forced false because that query never evaluated it.
func AnnotatePosts(v Viewer, posts []*models.Post) {
	for _, p := range posts {
		if p == nil {
			continue
		}
		p.You = !v.IsAnonymous() && p.Author == v.CallerHash()
		p.PriceDisplay = models.FormatMinorUnits(p.Price)
		if p.PostAuthor != nil {
			annotateAccount(v, p.PostAuthor)
		}
	}
}

// AnnotateAccounts stamps you/is_following on account rows.
func AnnotateAccounts(v Viewer, accounts []*models.Account) {
	for _, a := range accounts {
		if a != nil {
			annotateAccount(v, a)
		}
	}
}

func annotateAccount(v Viewer, a *models.Account) {
	if v.IsAnonymous() {
		a.You = false
		a.IsFollowing = false
		a.Public()
		return
	}
	a.You = a.Hash == v.CallerHash()
	if a.You {
		// following yourself is impossible
		a.IsFollowing = false
		return
	}
	a.Public()
}
