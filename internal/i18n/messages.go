package i18n

import "context"

// Text is a string in both portal languages.
type Text struct {
	EN string `json:"en" yaml:"en"`
	NP string `json:"np" yaml:"np"`
}

// In returns the text for l, falling back to English when the Nepali text is empty.
func (t Text) In(l Language) string {
	if l == Nepali && t.NP != "" {
		return t.NP
	}
	return t.EN
}

// Key names a catalog message.
type Key string

const (
	EmailRequired          Key = "email_required"
	EmailInvalid           Key = "email_invalid"
	EmailTaken             Key = "email_taken"
	PhoneRequired          Key = "phone_required"
	PhoneInvalid           Key = "phone_invalid"
	PhoneTaken             Key = "phone_taken"
	NationalIDRequired     Key = "national_id_required"
	NationalIDInvalid      Key = "national_id_invalid"
	NationalIDTaken        Key = "national_id_taken"
	PasswordRequired       Key = "password_required"
	PasswordTooShort       Key = "password_too_short"
	FullNameRequired       Key = "full_name_required"
	FullNameTooLong        Key = "full_name_too_long"
	ConfirmRequired        Key = "confirm_password_required"
	PasswordMismatch       Key = "password_mismatch"
	LoginError             Key = "login_error"
	InvalidCredentials     Key = "invalid_credentials"
	LoginHint              Key = "login_hint"
	AlreadySubmitting      Key = "already_submitting"
	RegistrationSuccess    Key = "registration_success"
	ContactRequired        Key = "contact_required"
	ResetLinkSent          Key = "reset_link_sent"
	ServiceSelection       Key = "service_selection_required"
	UnknownService         Key = "unknown_service"
	ConfirmationNeeded     Key = "confirmation_required"
	TitleTooLong           Key = "title_too_long"
	NoFiles                Key = "no_files"
	RateLimited            Key = "rate_limited"
	SessionRequired        Key = "session_required"
	ViewForbidden          Key = "view_forbidden"
	ApplicationNotFound    Key = "application_not_found"
	DocumentNotFound       Key = "document_not_found"
	UserNotFound           Key = "user_not_found"
	InvalidTransition      Key = "invalid_transition"
	CannotDeleteSelf       Key = "cannot_delete_self"
	BackupScheduled        Key = "backup_scheduled"
	ApplicationCreatedNote Key = "application_created"
)

var catalog = map[Key]Text{
	EmailRequired:          {EN: "Email is required", NP: "इमेल आवश्यक छ"},
	EmailInvalid:           {EN: "Please enter a valid email address", NP: "वैध इमेल ठेगाना प्रविष्ट गर्नुहोस्"},
	EmailTaken:             {EN: "This email is already registered", NP: "यो इमेल पहिले नै दर्ता भइसकेको छ"},
	PhoneRequired:          {EN: "Phone number is required", NP: "फोन नम्बर आवश्यक छ"},
	PhoneInvalid:           {EN: "Please enter a valid 10-digit phone number (starting with 98 or 97)", NP: "वैध १०-अंकीय फोन नम्बर प्रविष्ट गर्नुहोस् (९८ वा ९७ सुरु)"},
	PhoneTaken:             {EN: "This phone number is already registered", NP: "यो फोन नम्बर पहिले नै दर्ता भइसकेको छ"},
	NationalIDRequired:     {EN: "Citizen ID is required", NP: "नागरिकता नम्बर आवश्यक छ"},
	NationalIDInvalid:      {EN: "Please enter a valid Citizen ID (XX-XX-XX-XX-XXXXX)", NP: "वैध नागरिकता नम्बर प्रविष्ट गर्नुहोस् (XX-XX-XX-XX-XXXXX)"},
	NationalIDTaken:        {EN: "This Citizen ID is already registered", NP: "यो नागरिकता नम्बर पहिले नै दर्ता भइसकेको छ"},
	PasswordRequired:       {EN: "Password is required", NP: "पासवर्ड आवश्यक छ"},
	PasswordTooShort:       {EN: "Password must be at least 6 characters", NP: "पासवर्ड कम्तिमा ६ अक्षरको हुनुपर्छ"},
	FullNameRequired:       {EN: "Full name is required", NP: "पूरा नाम आवश्यक छ"},
	FullNameTooLong:        {EN: "Full name must be at most 128 characters", NP: "पूरा नाम बढीमा १२८ अक्षरको हुनुपर्छ"},
	ConfirmRequired:        {EN: "Please confirm password", NP: "पासवर्ड पुष्टि गर्नुहोस्"},
	PasswordMismatch:       {EN: "Passwords do not match", NP: "पासवर्ड मेल खाँदैन"},
	LoginError:             {EN: "Error during login. Please try again.", NP: "लगइन गर्दा त्रुटि भयो। कृपया पुनः प्रयास गर्नुहोस्।"},
	InvalidCredentials:     {EN: "Invalid login credentials", NP: "लगइन विवरण मिलेन"},
	LoginHint:              {EN: "Please register or check your login credentials.", NP: "कृपया दर्ता गर्नुहोस् वा आफ्नो लगइन विवरण जाँच गर्नुहोस्।"},
	AlreadySubmitting:      {EN: "Logging in...", NP: "प्रवेश गर्दै..."},
	RegistrationSuccess:    {EN: "Registration successful! Please login.", NP: "दर्ता सफल भयो! कृपया लगइन गर्नुहोस्।"},
	ContactRequired:        {EN: "Please enter your contact information", NP: "कृपया आफ्नो ठेगाना प्रविष्ट गर्नुहोस्"},
	ResetLinkSent:          {EN: "Password reset link has been sent to your email.", NP: "पासवर्ड रिसेट लिंक तपाईंको इमेलमा पठाइएको छ।"},
	ServiceSelection:       {EN: "Please select a service first", NP: "कृपया पहिले सेवा छान्नुहोस्"},
	UnknownService:         {EN: "Unknown service", NP: "अज्ञात सेवा"},
	ConfirmationNeeded:     {EN: "Please confirm this action", NP: "कृपया यो कार्य पुष्टि गर्नुहोस्"},
	TitleTooLong:           {EN: "Title must be at most 200 characters", NP: "शीर्षक बढीमा २०० अक्षरको हुनुपर्छ"},
	NoFiles:                {EN: "Please choose at least one file", NP: "कृपया कम्तिमा एउटा फाइल छान्नुहोस्"},
	RateLimited:            {EN: "Too many attempts. Please try again later.", NP: "धेरै प्रयास भयो। कृपया पछि पुनः प्रयास गर्नुहोस्।"},
	SessionRequired:        {EN: "Please login to continue", NP: "जारी राख्न कृपया लग-इन गर्नुहोस्"},
	ViewForbidden:          {EN: "You do not have access to this page", NP: "तपाईंलाई यो पृष्ठमा पहुँच छैन"},
	ApplicationNotFound:    {EN: "Application not found", NP: "आवेदन फेला परेन"},
	DocumentNotFound:       {EN: "Document not found", NP: "कागजात फेला परेन"},
	UserNotFound:           {EN: "User not found", NP: "प्रयोगकर्ता फेला परेन"},
	InvalidTransition:      {EN: "This application cannot move to that status", NP: "यो आवेदन उक्त स्थितिमा लैजान मिल्दैन"},
	CannotDeleteSelf:       {EN: "You cannot delete your own account", NP: "तपाईं आफ्नै खाता मेटाउन सक्नुहुन्न"},
	BackupScheduled:        {EN: "Backup has been scheduled", NP: "ब्याकअप तालिकामा राखिएको छ"},
	ApplicationCreatedNote: {EN: "Application submitted", NP: "आवेदन पेश गरियो"},
}

// Message returns both translations for k. Unknown keys return the key itself.
func Message(k Key) Text {
	if t, ok := catalog[k]; ok {
		return t
	}
	return Text{EN: string(k), NP: string(k)}
}

// T returns the message for k in l.
func T(l Language, k Key) string {
	return Message(k).In(l)
}

// TC returns the message for k in the context's language.
func TC(ctx context.Context, k Key) string {
	return T(FromContext(ctx), k)
}
