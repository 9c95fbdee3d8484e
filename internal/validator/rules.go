package validator

import (
	"log"
	"regexp"

	"taskify_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	labelColorPattern = regexp.MustCompile(`^(0x[0-9a-fA-F]{8}|#[0-9a-fA-F]{6})$`)
	phonePattern      = regexp.MustCompile(`^[0-9]{1,11}$`)
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'member-role': роль участника рабочего пространства
	mustRegister("member-role", validateMemberRole)

	// 'plan-tier': тариф подписки, включая старые названия
	mustRegister("plan-tier", validatePlanTier)

	mustRegister("label-color", validateLabelColor)
	mustRegister("phone", validatePhone)
}

// --- Функции валидации ---
// Пустые значения пропускаются, для них есть 'required'.

func validateMemberRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.MemberRole(value).Valid()
}

func validatePlanTier(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, ok := models.ParsePlan(value)
	return ok
}

func validateLabelColor(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return labelColorPattern.MatchString(value)
}

func validatePhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return phonePattern.MatchString(value)
}
