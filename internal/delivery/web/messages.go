package web

const (
	msgInternalError      = "internal error, please try again later"
	msgUnauthorized       = "please log in"
	msgForbidden          = "administrator access required"
	msgInvalidBody        = "malformed request body"
	msgInvalidID          = "invalid id"
	msgInvalidCredentials = "login failed: wrong email or password"
	msgTooManyAttempts    = "too many login attempts, try again in a minute"
	msgLoggedOut          = "logged out"
	msgNoQuestions        = "there are no questions matching this quiz yet"
	msgQuestionNotFound   = "question not found"
	msgUserNotFound       = "user not found"
	msgEmailTaken         = "this email is already registered"
	msgMissingQuestions   = "some submitted questions no longer exist and were not graded"
	msgCannotDeleteSelf   = "administrators cannot delete their own account"
)
