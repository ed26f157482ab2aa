package guard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthorizeRequiresIdentity(t *testing.T) {
	err := Authorize(Identity{}, Check{Relation: IsAuthenticated})
	require.ErrorIs(t, err, ErrUnauthorized)

	err = Authorize(Identity{UserID: 7}, Check{Relation: IsAuthenticated})
	require.NoError(t, err)
}

func TestAuthorizeRelationMatrix(t *testing.T) {
	student := Identity{UserID: 1}
	professor := Identity{UserID: 2, IsProfessor: true}
	admin := Identity{UserID: 3, IsAdmin: true}

	cases := []struct {
		name   string
		caller Identity
		check  Check
		want   error
	}{
		{"admin check denies student", student, Check{Relation: IsAdmin}, ErrForbidden},
		{"admin check denies professor", professor, Check{Relation: IsAdmin}, ErrForbidden},
		{"admin check allows admin", admin, Check{Relation: IsAdmin}, nil},
		{"professor-or-admin allows professor", professor, Check{Relation: IsProfessorOrAdmin}, nil},
		{"professor-or-admin allows admin", admin, Check{Relation: IsProfessorOrAdmin}, nil},
		{"professor-or-admin denies student", student, Check{Relation: IsProfessorOrAdmin}, ErrForbidden},
		{"owner check allows owner", student, Check{Relation: IsResourceOwner, OwnerID: 1}, nil},
		{"owner check denies non-owner", student, Check{Relation: IsResourceOwner, OwnerID: 2}, ErrForbidden},
		{"owner-or-admin allows admin over foreign resource", admin, Check{Relation: IsOwnerOrAdmin, OwnerID: 1}, nil},
		{"owner-or-admin denies unrelated student", student, Check{Relation: IsOwnerOrAdmin, OwnerID: 2}, ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.caller, tc.check)
			if tc.want == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestAuthorizeDenyAsNotFound(t *testing.T) {
	caller := Identity{UserID: 1}

	err := Authorize(caller, Check{Relation: IsResourceOwner, OwnerID: 2, DenyAsNotFound: true})
	require.ErrorIs(t, err, ErrNotFound)

	err = Authorize(caller, Check{Relation: IsOwnerOrAdmin, OwnerID: 2, DenyAsNotFound: true})
	require.ErrorIs(t, err, ErrNotFound)

	// The conflation never hides the resource from its owner.
	err = Authorize(caller, Check{Relation: IsResourceOwner, OwnerID: 1, DenyAsNotFound: true})
	require.NoError(t, err)
}
