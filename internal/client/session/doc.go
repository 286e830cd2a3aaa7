// Package session owns the client's single authentication session.
//
// A Controller moves between three states:
//
//	Bootstrapping --no token / rejected--> Anonymous
//	Bootstrapping --/auth/me ok----------> Authenticated
//	Anonymous     --login/register-------> Authenticated
//	Authenticated --logout / 401---------> Anonymous
//
// Every transition-starting operation takes a generation ticket. Network
// results are committed under the controller mutex only if their ticket is
// still the newest, so a logout always wins over a late login or bootstrap
// response.
package session
