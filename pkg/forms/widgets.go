package forms

// Built-in widget template names. Both bundles ship every name so renderers
// can be swapped without touching widget code.
const (
	TemplateInput        = "forms/widgets/input.html"
	TemplateText         = "forms/widgets/text.html"
	TemplateEmail        = "forms/widgets/email.html"
	TemplateNumber       = "forms/widgets/number.html"
	TemplateURL          = "forms/widgets/url.html"
	TemplatePassword     = "forms/widgets/password.html"
	TemplateHidden       = "forms/widgets/hidden.html"
	TemplateDate         = "forms/widgets/date.html"
	TemplateCheckbox     = "forms/widgets/checkbox.html"
	TemplateTextarea     = "forms/widgets/textarea.html"
	TemplateSelect       = "forms/widgets/select.html"
	TemplateSelectOption = "forms/widgets/select_option.html"
)

// WidgetTemplates lists the built-in widget template names.
func WidgetTemplates() []string {
	return []string{
		TemplateInput,
		TemplateText,
		TemplateEmail,
		TemplateNumber,
		TemplateURL,
		TemplatePassword,
		TemplateHidden,
		TemplateDate,
		TemplateCheckbox,
		TemplateTextarea,
		TemplateSelect,
		TemplateSelectOption,
	}
}
