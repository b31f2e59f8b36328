package account

import "github.com/budgetly/budgetly/internal/shared"

func validation(code string, number int, msg string) *shared.Error {
	return shared.NewError(shared.KindValidation, code, number, msg)
}

func dependency(code string, number int, msg string) *shared.Error {
	return shared.NewError(shared.KindDependency, code, number, msg)
}

// Signup outcomes.
var (
	ErrEmptyFields       = validation("EMPTY_FIELDS", 100, "Empty input fields!")
	ErrInvalidName       = validation("INVALID_NAME", 101, "Invalid name entered")
	ErrInvalidEmail      = validation("INVALID_EMAIL", 102, "Invalid email entered")
	ErrInvalidDOB        = validation("INVALID_DOB", 103, "Invalid date of birth entered")
	ErrPasswordTooShort  = validation("PASSWORD_TOO_SHORT", 104, "Password is too short!")
	ErrDuplicateEmail    = shared.NewError(shared.KindConflict, "DUPLICATE_EMAIL", 105, "User with the provided email already exists")
	ErrUserSaveFailed    = dependency("USER_SAVE_FAILED", 106, "An error occurred while saving the user account!")
	ErrPasswordTooLong   = validation("PASSWORD_TOO_LONG", 107, "Password is too long!")
	ErrPasswordHash      = dependency("PASSWORD_HASH_FAILED", 108, "An error occurred while hashing password!")
	ErrSignupLookup      = dependency("USER_LOOKUP_FAILED", 109, "An error occurred while checking for existing user!")
	ErrSignupInProgress  = shared.NewError(shared.KindConflict, "SIGNUP_IN_PROGRESS", 110, "A signup for this email is already in progress")
	ErrVerificationHash  = dependency("VERIFICATION_HASH_FAILED", 111, "An error occurred while hashing email data!")
	ErrVerificationSave  = dependency("VERIFICATION_SAVE_FAILED", 112, "Couldn't save verification email data!")
	ErrVerificationEmail = dependency("VERIFICATION_EMAIL_FAILED", 113, "Verification email failed")
)

// Verification consumption outcomes.
var (
	ErrVerificationNotFound = shared.NewError(shared.KindNotFound, "VERIFICATION_NOT_FOUND", 201,
		"Account record doesn't exist or has been verified already. Please sign up or log in.")
	ErrVerificationExpired = shared.NewError(shared.KindExpired, "VERIFICATION_EXPIRED", 202,
		"Link has expired. Please sign up again")
	ErrVerificationInvalid = shared.NewError(shared.KindAuth, "VERIFICATION_INVALID", 203,
		"Invalid verification details passed. Check your inbox")
	ErrVerificationLookup   = dependency("VERIFICATION_LOOKUP_FAILED", 204, "An error occurred while checking for existing user verification record")
	ErrVerificationCleanup  = dependency("VERIFICATION_CLEANUP_FAILED", 205, "An error occurred while clearing expired user verification record")
	ErrUserCleanup          = dependency("USER_CLEANUP_FAILED", 206, "Clearing user with expired unique string failed")
	ErrVerificationCompare  = dependency("VERIFICATION_COMPARE_FAILED", 207, "An error occurred while comparing unique strings")
	ErrVerificationUpdate   = dependency("VERIFICATION_UPDATE_FAILED", 208, "An error occurred while updating user record to show verified")
	ErrVerificationFinalize = dependency("VERIFICATION_FINALIZE_FAILED", 209, "An error occurred while finalizing successful verification")
	ErrMalformedUserID      = validation("MALFORMED_USER_ID", 210, "Invalid user id")
)

// Sign-in outcomes.
var (
	ErrEmptyCredentials   = validation("EMPTY_CREDENTIALS", 301, "Empty credentials supplied")
	ErrSigninNotVerified  = shared.NewError(shared.KindAuth, "EMAIL_NOT_VERIFIED", 302, "Email hasn't been verified yet. Check your inbox")
	ErrInvalidPassword    = shared.NewError(shared.KindAuth, "INVALID_PASSWORD", 303, "Invalid password entered!")
	ErrPasswordCompare    = dependency("PASSWORD_COMPARE_FAILED", 304, "An error occurred while comparing passwords")
	ErrInvalidCredentials = shared.NewError(shared.KindAuth, "INVALID_CREDENTIALS", 305, "Invalid credentials entered!")
	ErrSigninLookup       = dependency("USER_LOOKUP_FAILED", 306, "An error occurred while checking for existing user")
)

// Reset issuance outcomes.
var (
	ErrEmptyResetRequest  = validation("EMPTY_RESET_FIELDS", 400, "Empty input fields!")
	ErrResetNotVerified   = shared.NewError(shared.KindAuth, "EMAIL_NOT_VERIFIED", 401, "Email hasn't been verified yet. Check your inbox")
	ErrNoAccount          = shared.NewError(shared.KindNotFound, "NO_ACCOUNT", 402, "No account with the supplied email exists!")
	ErrResetLookup        = dependency("RESET_LOOKUP_FAILED", 403, "An error occurred while checking for existing user")
	ErrResetClear         = dependency("RESET_CLEAR_FAILED", 404, "Clearing existing password reset records failed")
	ErrResetHash          = dependency("RESET_HASH_FAILED", 405, "An error occurred while hashing the password reset data!")
	ErrResetSave          = dependency("RESET_SAVE_FAILED", 406, "Couldn't save password reset data!")
	ErrResetEmail         = dependency("RESET_EMAIL_FAILED", 407, "Password reset email failed")
	ErrRedirectNotAllowed = validation("REDIRECT_NOT_ALLOWED", 408, "Redirect URL is not allowed")
	ErrResetInProgress    = shared.NewError(shared.KindConflict, "RESET_IN_PROGRESS", 409, "A password reset for this account is already in progress")
)

// Reset consumption outcomes.
var (
	ErrResetExpired       = shared.NewError(shared.KindExpired, "RESET_EXPIRED", 501, "Password reset link has expired")
	ErrResetClearExpired  = dependency("RESET_CLEAR_FAILED", 502, "Clearing password reset record failed")
	ErrResetFinalize      = dependency("RESET_FINALIZE_FAILED", 503, "Finalizing password reset failed")
	ErrPasswordUpdate     = dependency("PASSWORD_UPDATE_FAILED", 504, "Updating user password failed")
	ErrNewPasswordHash    = dependency("NEW_PASSWORD_HASH_FAILED", 505, "An error occurred while hashing new password")
	ErrResetCompare       = dependency("RESET_COMPARE_FAILED", 507, "Comparing password reset strings failed")
	ErrResetNotFound      = shared.NewError(shared.KindNotFound, "RESET_NOT_FOUND", 508, "Password reset request not found")
	ErrResetRecordLookup  = dependency("RESET_LOOKUP_FAILED", 509, "Checking for existing password reset record failed")
	ErrEmptyResetFields   = validation("EMPTY_RESET_FIELDS", 510, "Empty input fields!")
	ErrResetMalformedUser = validation("MALFORMED_USER_ID", 511, "Invalid user id")
	ErrResetPasswordShort = validation("PASSWORD_TOO_SHORT", 512, "Password is too short!")
	ErrResetPasswordLong  = validation("PASSWORD_TOO_LONG", 513, "Password is too long!")
)
