package playground

import "testing"

func TestValidateRejectsEmptyEnvironment(t *testing.T) {
	if Validate(NewEnvironment(2, 2)) {
		t.Fatal("empty environment reported valid")
	}
}

func TestValidateAcceptsBalancedEnvironment(t *testing.T) {
	env := NewEnvironment(2, 2)
	env[CornerKey(0, 0)] = append(env[CornerKey(0, 0)], ArtifactLabel("blue"))
	env[CornerKey(1, 1)] = append(env[CornerKey(1, 1)], ArtifactLabel("red"))
	env[CornerKey(2, 2)] = append(env[CornerKey(2, 2)], ArtifactLabel("green"))
	env[CenterKey(0, 0)] = append(env[CenterKey(0, 0)], TargetLabel("blue"))
	env[CenterKey(0, 1)] = append(env[CenterKey(0, 1)], TargetLabel("red"), TargetLabel("green"))
	if !Validate(env) {
		t.Fatal("balanced environment reported invalid")
	}
}

func TestValidateRejectsImbalance(t *testing.T) {
	env := NewEnvironment(2, 2)
	env[CornerKey(0, 0)] = append(env[CornerKey(0, 0)], ArtifactLabel("blue"))
	if Validate(env) {
		t.Fatal("artifact without target reported valid")
	}
}

func TestValidateIgnoresMalformedLabels(t *testing.T) {
	env := NewEnvironment(2, 2)
	env[CornerKey(0, 0)] = append(env[CornerKey(0, 0)], "debris", ArtifactLabel("blue"))
	env[CenterKey(1, 1)] = append(env[CenterKey(1, 1)], TargetLabel("blue"))
	if !Validate(env) {
		t.Fatal("malformed labels should not affect the balance check")
	}
}
