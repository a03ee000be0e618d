package certificate

import "github.com/brightpath/academy/core/enrollment"

// Eligible reports whether an enrollment has earned a certificate.
// Eligibility is purely derived state: only completed enrollments
// qualify.
func Eligible(e enrollment.Enrollment) bool {
	return e.Status == enrollment.Completed
}

// Issue flips the certificate flag on an eligible enrollment and
// reports whether anything changed. Issuing twice is a no-op; no
// physical artifact is produced here, rendering is the export
// collaborator's job.
func Issue(e *enrollment.Enrollment) bool {
	if !Eligible(*e) || e.CertificateIssued {
		return false
	}

	e.CertificateIssued = true
	return true
}
