// Package teams resolves user-typed team names to site slugs.
//
// Team lists come from a season's team index page and are cached per sport
// and year through teamcache. FindTeamSlug matches free text against full
// names, slugs, run-together names, and single words, then falls back to a
// fuzzy ratio match.
package teams
