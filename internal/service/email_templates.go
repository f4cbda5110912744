package service

import "fmt"

func welcomeEmailTemplate(name, dashboardURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s", appName)
	body := fmt.Sprintf(`Hi %s,

Your %s account is ready. Upload files, pick a theme and set your weather city from the dashboard:
%s

Best,
The %s Team`, name, appName, dashboardURL, appName)

	return subject, body
}

func accountDeletedEmailTemplate(name, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s account has been deleted", appName)
	body := fmt.Sprintf(`Hi %s,

Your account and all uploaded files have been deleted.

If this wasn't you, reply to this email.

Best,
The %s Team`, name, appName)

	return subject, body
}
