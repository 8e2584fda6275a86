// Package gitops provides the version-control capability behind the
// optional publish step.
//
// The Publisher interface covers exactly what scaffolding needs: make sure
// the root is an initialized repository, stage everything, commit, push.
// The real implementation is built on go-git; tests substitute a recording
// fake.
package gitops
